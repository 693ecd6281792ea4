package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"junkshop/internal/core/id"
	"junkshop/internal/domain/documents/shipment"
	"junkshop/internal/infrastructure/http/v1/dto"
)

// ShipmentHandler serves shipment documents and their lifecycle.
type ShipmentHandler struct {
	*BaseHandler
	service *shipment.Service
	audit   TransitionHistory
}

// TransitionHistory reads the status audit trail.
type TransitionHistory interface {
	History(ctx context.Context, shipmentID id.ID, limit int) ([]shipment.TransitionRecord, error)
}

// NewShipmentHandler creates the handler.
func NewShipmentHandler(base *BaseHandler, service *shipment.Service, audit TransitionHistory) *ShipmentHandler {
	return &ShipmentHandler{BaseHandler: base, service: service, audit: audit}
}

// Create handles POST /shipments.
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sh, err := req.ToEntity(h.OrganizationID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), sh); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, sh.ID)
}

// Get handles GET /shipments/:id.
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromShipment(sh))
}

// List handles GET /shipments.
func (h *ShipmentHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := q.ToFilter(h.OrganizationID(c))
	if q.OrderBy == "" {
		filter.OrderBy = "date DESC"
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ListResponse[dto.ShipmentResponse]{
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, sh := range result.Items {
		resp.Items = append(resp.Items, dto.FromShipment(sh))
	}
	h.OK(c, resp)
}

// Transition handles POST /shipments/:id/transition.
func (h *ShipmentHandler) Transition(c *gin.Context) {
	shipmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sh, err := h.service.Transition(c.Request.Context(), shipmentID, shipment.Status(req.Status), req.Note)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromShipment(sh))
}

// Complete handles POST /shipments/:id/complete — arrival, weigh-outs and
// the move to DONE in one request.
func (h *ShipmentHandler) Complete(c *gin.Context) {
	shipmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	sh, _, err := h.service.Complete(c.Request.Context(), shipmentID, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromShipment(sh))
}

// Summary handles GET /shipments/:id/summary.
func (h *ShipmentHandler) Summary(c *gin.Context) {
	shipmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), shipmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSummary(summary))
}

// History handles GET /shipments/:id/transitions.
func (h *ShipmentHandler) History(c *gin.Context) {
	shipmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	records, err := h.audit.History(c.Request.Context(), shipmentID, parseLimit(c, 50))
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.TransitionRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, dto.FromTransitionRecord(rec))
	}
	h.OK(c, resp)
}

func parseLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
