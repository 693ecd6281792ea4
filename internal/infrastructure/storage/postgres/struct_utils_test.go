package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"junkshop/internal/core/types"
	"junkshop/internal/domain/catalogs/itemgoal"
	"junkshop/internal/domain/documents/shipment"
)

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[itemgoal.ItemGoal]()

	// from entity.BaseEntity / entity.Catalog
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "organization_id")

	// own fields
	assert.Contains(t, cols, "unit")
	assert.Contains(t, cols, "goal_quantity")
	assert.Contains(t, cols, "commission")
}

func TestExtractDBColumns_SkipsIgnoredFields(t *testing.T) {
	cols := ExtractDBColumns[shipment.Shipment]()

	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "arrival")
	assert.NotContains(t, cols, "lines")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	goal := itemgoal.New("Copper Wire", "Main Yard", "org-1", types.UnitKg)
	goal.GoalQuantity = types.NewQuantityFromFloat64(100)

	m := StructToMap(goal)

	assert.Equal(t, goal.ID, m["id"])
	assert.Equal(t, "Copper Wire", m["name"])
	assert.Equal(t, "Main Yard", m["branch"])
	assert.Equal(t, types.UnitKg, m["unit"])
	assert.Equal(t, 1, m["version"])
	assert.NotContains(t, m, "lines")
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("x"))
}
