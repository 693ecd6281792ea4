package handlers

import (
	"github.com/gin-gonic/gin"

	"junkshop/internal/domain/catalogs/itemgoal"
	"junkshop/internal/domain/progress"
	"junkshop/internal/infrastructure/http/v1/dto"
)

// ItemGoalHandler serves the item goal catalog and its progress cards.
type ItemGoalHandler struct {
	*BaseHandler
	service *itemgoal.Service
}

// NewItemGoalHandler creates the handler.
func NewItemGoalHandler(base *BaseHandler, service *itemgoal.Service) *ItemGoalHandler {
	return &ItemGoalHandler{BaseHandler: base, service: service}
}

// Create handles POST /item-goals.
func (h *ItemGoalHandler) Create(c *gin.Context) {
	var req dto.CreateItemGoalRequest
	if !h.BindJSON(c, &req) {
		return
	}

	goal := req.ToEntity(h.OrganizationID(c))
	if err := h.service.Create(c.Request.Context(), goal); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, goal.ID)
}

// Get handles GET /item-goals/:id.
func (h *ItemGoalHandler) Get(c *gin.Context) {
	goalID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	goal, err := h.service.GetByID(c.Request.Context(), goalID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItemGoal(goal))
}

// Update handles PUT /item-goals/:id.
func (h *ItemGoalHandler) Update(c *gin.Context) {
	goalID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemGoalRequest
	if !h.BindJSON(c, &req) {
		return
	}

	goal, err := h.service.GetByID(c.Request.Context(), goalID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(goal)
	if err := h.service.Update(c.Request.Context(), goal); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItemGoal(goal))
}

// Delete handles DELETE /item-goals/:id (soft delete).
func (h *ItemGoalHandler) Delete(c *gin.Context) {
	goalID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), goalID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /item-goals.
func (h *ItemGoalHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter(h.OrganizationID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ListResponse[dto.ItemGoalResponse]{
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, goal := range result.Items {
		resp.Items = append(resp.Items, dto.FromItemGoal(goal))
	}
	h.OK(c, resp)
}

// Card handles GET /item-goals/:id/card — the board card with progress.
func (h *ItemGoalHandler) Card(c *gin.Context) {
	goalID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	card, err := h.service.Card(c.Request.Context(), goalID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCard(card, progress.DefaultSegments))
}
