package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	approvals  *service.ApprovalService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService, approvals *service.ApprovalService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, approvals: approvals}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Number == "" || req.ReceivedDate == "" {
		return apperrors.NewValidationError("number, received_date required", nil)
	}

	complaint, err := complaintFromRequest(&req)
	if err != nil {
		return err
	}
	created, err := h.complaints.Create(c.UserContext(), actorName(c), complaint)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(created, time.Now())})
}

// Update PUT /complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	var req dto.ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Number == "" || req.ReceivedDate == "" {
		return apperrors.NewValidationError("number, received_date required", nil)
	}

	complaint, err := complaintFromRequest(&req)
	if err != nil {
		return err
	}
	complaint.ID = c.Params("id")

	updated, err := h.complaints.Update(c.UserContext(), actorName(c), complaint)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(updated, time.Now())})
}

// List GET /complaints. Cases where the viewer is the removed member are
// never returned.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	complaints, err := h.complaints.List(c.UserContext(), actorName(c))
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i], now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.complaints.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if viewer := actorName(c); viewer != "" && !complaint.IsVisibleTo(viewer) {
		return apperrors.NewNotFound("complaint", map[string]any{"id": complaint.ID})
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint, time.Now())})
}

// History GET /complaints/:id/history, ascending by timestamp.
func (h *ComplaintsHandler) History(c *fiber.Ctx) error {
	entries, err := h.complaints.GetHistory(c.UserContext(), actorName(c), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DecideAction POST /complaints/:id/actions/:index/approval.
func (h *ComplaintsHandler) DecideAction(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return apperrors.NewValidationError("index must be an integer", nil)
	}
	var req dto.ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	approval, err := h.approvals.DecideAction(c.UserContext(), actorName(c), c.Params("id"), index, req.Decision, req.Comments)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": approvalPayload(*approval)})
}

// DecideConclusion POST /complaints/:id/conclusion/approval.
func (h *ComplaintsHandler) DecideConclusion(c *fiber.Ctx) error {
	var req dto.ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	approval, err := h.approvals.DecideConclusion(c.UserContext(), actorName(c), c.Params("id"), req.Decision, req.Comments)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": approvalPayload(*approval)})
}

func actorName(c *fiber.Ctx) string {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return ""
	}
	return principal.Name()
}
