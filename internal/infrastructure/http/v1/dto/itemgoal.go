package dto

import (
	"junkshop/internal/core/types"
	"junkshop/internal/domain/catalogs/itemgoal"
)

// --- Request DTOs ---

// CreateItemGoalRequest is the request body for creating an item goal.
// Price arrives in the composite wire form ("12.50/kg"); malformed values
// decode to zero, matching the catalog's lenient intake.
type CreateItemGoalRequest struct {
	Item         string  `json:"item" binding:"required"`
	Type         string  `json:"type"`
	Branch       string  `json:"branch" binding:"required"`
	Price        string  `json:"price" binding:"required"`
	Commission   string  `json:"commission"`
	GoalQuantity float64 `json:"goalQuantity" binding:"required"`
	ImageRef     string  `json:"imageRef"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateItemGoalRequest) ToEntity(organizationID string) *itemgoal.ItemGoal {
	tag := types.ParseComposite(r.Price)
	goal := itemgoal.New(r.Item, r.Branch, organizationID, tag.Unit)
	goal.Type = r.Type
	goal.Price = tag.Amount
	goal.Commission = types.ParseCurrency(r.Commission)
	goal.GoalQuantity = types.NewQuantityFromFloat64(r.GoalQuantity)
	goal.ImageRef = r.ImageRef
	return goal
}

// UpdateItemGoalRequest is the request body for updating an item goal.
type UpdateItemGoalRequest struct {
	Item         string  `json:"item" binding:"required"`
	Type         string  `json:"type"`
	Branch       string  `json:"branch" binding:"required"`
	Price        string  `json:"price" binding:"required"`
	Commission   string  `json:"commission"`
	GoalQuantity float64 `json:"goalQuantity" binding:"required"`
	ImageRef     string  `json:"imageRef"`
	Version      int     `json:"version" binding:"required"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateItemGoalRequest) ApplyTo(goal *itemgoal.ItemGoal) {
	tag := types.ParseComposite(r.Price)
	goal.Name = r.Item
	goal.Type = r.Type
	goal.Branch = r.Branch
	goal.Unit = tag.Unit
	goal.Price = tag.Amount
	goal.Commission = types.ParseCurrency(r.Commission)
	goal.GoalQuantity = types.NewQuantityFromFloat64(r.GoalQuantity)
	goal.ImageRef = r.ImageRef
	goal.Version = r.Version
}

// --- Response DTOs ---

// ItemGoalResponse is the response body for an item goal.
type ItemGoalResponse struct {
	ID           string `json:"id"`
	Item         string `json:"item"`
	Type         string `json:"type"`
	Branch       string `json:"branch"`
	Unit         string `json:"unit"`
	Price        string `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Commission   string `json:"commission"`
	GoalQuantity string `json:"goalQuantity"`
	ImageRef     string `json:"imageRef,omitempty"`
	DeletionMark bool   `json:"deletionMark"`
	Version      int    `json:"version"`
}

// FromItemGoal converts an entity to its response form.
func FromItemGoal(goal *itemgoal.ItemGoal) ItemGoalResponse {
	tag := goal.PriceTag()
	return ItemGoalResponse{
		ID:           goal.ID.String(),
		Item:         goal.Item(),
		Type:         goal.Type,
		Branch:       goal.Branch,
		Unit:         string(goal.Unit),
		Price:        tag.String(),
		PriceDisplay: tag.Format(),
		Commission:   types.FormatAmount(goal.Commission),
		GoalQuantity: goal.GoalQuantity.Display(),
		ImageRef:     goal.ImageRef,
		DeletionMark: goal.DeletionMark,
		Version:      goal.Version,
	}
}

// ItemCardResponse is the inventory card read model: the goal plus its
// progress toward the target.
type ItemCardResponse struct {
	Goal             ItemGoalResponse `json:"goal"`
	Processed        string           `json:"processed"`
	ProcessedDisplay string           `json:"processedDisplay"`
	GoalDisplay      string           `json:"goalDisplay"`
	Percentage       float64          `json:"percentage"`
	FilledSegments   int              `json:"filledSegments"`
	Segments         int              `json:"segments"`
}

// FromCard converts the service read model to its response form.
func FromCard(card *itemgoal.CardView, segments int) ItemCardResponse {
	return ItemCardResponse{
		Goal:             FromItemGoal(card.Goal),
		Processed:        card.Processed.Quantity.String(),
		ProcessedDisplay: card.ProcessedDisplay,
		GoalDisplay:      card.GoalDisplay,
		Percentage:       card.Indicator.Percentage,
		FilledSegments:   card.Indicator.FilledSegments,
		Segments:         segments,
	}
}
