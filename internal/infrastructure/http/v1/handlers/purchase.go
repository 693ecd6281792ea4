package handlers

import (
	"github.com/gin-gonic/gin"

	"junkshop/internal/domain/documents/purchase"
	"junkshop/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves drop-off intake documents.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates the handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Commit handles POST /dropoffs — validates and persists the document with
// its lines.
func (h *PurchaseHandler) Commit(c *gin.Context) {
	var req dto.CommitDropoffRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := req.ToEntity(h.OrganizationID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Commit(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, d.ID)
}

// Get handles GET /dropoffs/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	dropoffID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), dropoffID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDropoff(d))
}

// List handles GET /dropoffs.
func (h *PurchaseHandler) List(c *gin.Context) {
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

	resp := dto.ListResponse[dto.DropoffResponse]{
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, d := range result.Items {
		resp.Items = append(resp.Items, dto.FromDropoff(d))
	}
	h.OK(c, resp)
}
