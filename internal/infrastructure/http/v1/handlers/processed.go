package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkshop/internal/domain/registers/processed"
	"junkshop/internal/infrastructure/http/v1/dto"
)

// ProcessedHandler serves the processed-item register.
type ProcessedHandler struct {
	*BaseHandler
	service *processed.Service
}

// NewProcessedHandler creates the handler.
func NewProcessedHandler(base *BaseHandler, service *processed.Service) *ProcessedHandler {
	return &ProcessedHandler{BaseHandler: base, service: service}
}

// Record handles POST /processed — appends intake records.
func (h *ProcessedHandler) Record(c *gin.Context) {
	var req dto.RecordProcessedRequest
	if !h.BindJSON(c, &req) {
		return
	}

	logs := req.ToLogs(h.OrganizationID(c))
	if err := h.service.Record(c.Request.Context(), logs); err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.ProcessedLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, dto.FromProcessedLog(l))
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /processed — all records for the organization.
func (h *ProcessedHandler) List(c *gin.Context) {
	logs, err := h.service.ListByOrganization(c.Request.Context(), h.OrganizationID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.ProcessedLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, dto.FromProcessedLog(l))
	}
	h.OK(c, resp)
}

// Total handles GET /processed/total?item=&branch= — the aggregated sum for
// one key.
func (h *ProcessedHandler) Total(c *gin.Context) {
	key := processed.Key{
		Item:           c.Query("item"),
		Branch:         c.Query("branch"),
		OrganizationID: h.OrganizationID(c),
	}

	total, err := h.service.TotalFor(c.Request.Context(), key)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProcessedTotal(total))
}
