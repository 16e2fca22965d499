package handlers

import (
	"fmt"
	"time"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const wireDateLayout = "2006-01-02"

func parseWireDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(wireDateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(
			fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field), nil)
	}
	return parsed, nil
}

func formatWireDate(t time.Time) string {
	return t.Format(wireDateLayout)
}

func formatWireDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(wireDateLayout)
	return &formatted
}

func complaintFromRequest(req *dto.ComplaintRequest) (*domain.Complaint, error) {
	receivedDate, err := parseWireDate("received_date", req.ReceivedDate)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		Number:              req.Number,
		Category:            req.Category,
		Characteristic:      req.Characteristic,
		Status:              req.Status,
		ResponsibleInstance: req.ResponsibleInstance,
		RemovedMember:       req.RemovedMember,
		Responsible1:        req.Responsible1,
		Responsible2:        req.Responsible2,
		ReceivedDate:        receivedDate,
		Description:         req.Description,
		ComplaintAttachment: req.ComplaintAttachment,
		EvidenceAttachment:  req.EvidenceAttachment,
		Procedures:          req.Procedures,
	}

	for _, point := range req.AnalysisPoints {
		complaint.AnalysisPoints = append(complaint.AnalysisPoints, domain.AnalysisPoint{
			Point:      point.Point,
			Conclusion: point.Conclusion,
			Judgment:   point.Judgment,
		})
	}

	for _, interview := range req.Interviews {
		if !interview.Type.Valid() {
			return nil, apperrors.NewValidationError("unknown interview type",
				map[string]any{"type": interview.Type})
		}
		scheduled, err := parseWireDate("scheduled_date", interview.ScheduledDate)
		if err != nil {
			return nil, err
		}
		complaint.Interviews = append(complaint.Interviews, domain.Interview{
			Type:          interview.Type,
			ScheduledDate: scheduled,
			Transcription: interview.Transcription,
		})
	}

	for _, action := range req.Actions {
		converted, err := actionFromPayload(action)
		if err != nil {
			return nil, err
		}
		complaint.Actions = append(complaint.Actions, *converted)
	}

	if req.Conclusion != nil {
		closing, err := parseWireDate("closing_date", req.Conclusion.ClosingDate)
		if err != nil {
			return nil, err
		}
		approval, err := approvalFromPayload(req.Conclusion.Approval)
		if err != nil {
			return nil, err
		}
		complaint.Conclusion = &domain.Conclusion{
			Procedencia:   req.Conclusion.Procedencia,
			ClosingDate:   closing,
			Justification: req.Conclusion.Justification,
			Observation:   req.Conclusion.Observation,
			Approval:      approval,
		}
	}

	return complaint, nil
}

func actionFromPayload(payload dto.ActionPayload) (*domain.Action, error) {
	startDate, err := parseWireDate("start_date", payload.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseWireDate("end_date", payload.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewValidationError("end_date must not precede start_date", nil)
	}
	approval, err := approvalFromPayload(payload.Approval)
	if err != nil {
		return nil, err
	}
	return &domain.Action{
		Type:        payload.Type,
		Description: payload.Description,
		Responsible: payload.Responsible,
		Status:      payload.Status,
		StartDate:   startDate,
		EndDate:     endDate,
		Observation: payload.Observation,
		Approval:    approval,
	}, nil
}

func approvalFromPayload(payload dto.ApprovalPayload) (domain.Approval, error) {
	approval := domain.Approval{
		Status:   payload.Status,
		Comments: payload.Comments,
	}
	if approval.Status == "" {
		approval.Status = domain.ApprovalPending
	}
	if payload.Date != nil {
		date, err := parseWireDate("approval date", *payload.Date)
		if err != nil {
			return domain.Approval{}, err
		}
		approval.Date = &date
	}
	return approval, nil
}

func approvalPayload(approval domain.Approval) dto.ApprovalPayload {
	return dto.ApprovalPayload{
		Status:   approval.Status,
		Date:     formatWireDatePtr(approval.Date),
		Comments: approval.Comments,
	}
}

func complaintResponse(complaint *domain.Complaint, now time.Time) dto.ComplaintResponse {
	resp := dto.ComplaintResponse{
		ID:                  complaint.ID,
		Number:              complaint.Number,
		Category:            complaint.Category,
		Characteristic:      complaint.Characteristic,
		Status:              complaint.Status,
		StatusDisplay:       complaint.Status.DisplayName(),
		ResponsibleInstance: complaint.ResponsibleInstance,
		RemovedMember:       complaint.RemovedMember,
		Responsible1:        complaint.Responsible1,
		Responsible2:        complaint.Responsible2,
		ReceivedDate:        formatWireDate(complaint.ReceivedDate),
		Description:         complaint.Description,
		ComplaintAttachment: complaint.ComplaintAttachment,
		EvidenceAttachment:  complaint.EvidenceAttachment,
		Procedures:          complaint.Procedures,
		SLADays:             service.ComplaintSLADays(complaint, now),
		CreatedAt:           complaint.CreatedAt,
		UpdatedAt:           complaint.UpdatedAt,
	}

	for _, point := range complaint.AnalysisPoints {
		resp.AnalysisPoints = append(resp.AnalysisPoints, dto.AnalysisPointPayload{
			Point:      point.Point,
			Conclusion: point.Conclusion,
			Judgment:   point.Judgment,
		})
	}
	for _, interview := range complaint.Interviews {
		resp.Interviews = append(resp.Interviews, dto.InterviewPayload{
			Type:          interview.Type,
			ScheduledDate: formatWireDate(interview.ScheduledDate),
			Transcription: interview.Transcription,
		})
	}
	for _, action := range complaint.Actions {
		resp.Actions = append(resp.Actions, dto.ActionPayload{
			Type:        action.Type,
			Description: action.Description,
			Responsible: action.Responsible,
			Status:      action.Status,
			StartDate:   formatWireDate(action.StartDate),
			EndDate:     formatWireDate(action.EndDate),
			Observation: action.Observation,
			Approval:    approvalPayload(action.Approval),
		})
	}
	if complaint.Conclusion != nil {
		resp.Conclusion = &dto.ConclusionPayload{
			Procedencia:   complaint.Conclusion.Procedencia,
			ClosingDate:   formatWireDate(complaint.Conclusion.ClosingDate),
			Justification: complaint.Conclusion.Justification,
			Observation:   complaint.Conclusion.Observation,
			Approval:      approvalPayload(complaint.Conclusion.Approval),
		}
	}
	for _, entry := range complaint.History {
		resp.History = append(resp.History, historyEntryResponse(entry))
	}
	return resp
}

func historyEntryResponse(entry domain.HistoryEntry) dto.HistoryEntryResponse {
	return dto.HistoryEntryResponse{
		Timestamp: entry.Timestamp,
		User:      entry.User,
		Field:     entry.Field,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		Type:      entry.Type,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Active: user.Active,
	}
}
