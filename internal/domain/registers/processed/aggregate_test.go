package processed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func log(item, branch, org, qty string) Log {
	return NewLog(item, branch, org, qty)
}

func TestAggregate_CaseInsensitiveItem(t *testing.T) {
	logs := []Log{
		log("Copper", "A", "org-1", "10"),
		log("COPPER", "A", "org-1", "5.5"),
		log("copper", "A", "org-1", "2"),
	}

	total := Aggregate(logs, Key{Item: "copper", Branch: "A", OrganizationID: "org-1"})
	assert.InDelta(t, 17.5, total.Quantity.Float64(), 1e-9)
}

func TestAggregate_ExactBranchAndOrganization(t *testing.T) {
	logs := []Log{
		log("Copper", "A", "org-1", "10"),
		log("Copper", "a", "org-1", "99"),  // branch is case-sensitive
		log("Copper", "A", "org-2", "99"),  // different organization
		log("Copper", "B", "org-1", "99"),  // different branch
	}

	total := Aggregate(logs, Key{Item: "Copper", Branch: "A", OrganizationID: "org-1"})
	assert.InDelta(t, 10, total.Quantity.Float64(), 1e-9)
}

func TestAggregate_CoercesBadQuantitiesToZero(t *testing.T) {
	logs := []Log{
		log("Tin", "A", "org-1", "4.25"),
		log("Tin", "A", "org-1", "garbage"),
		log("Tin", "A", "org-1", ""),
		log("Tin", "A", "org-1", "0.75"),
	}

	// Bad records contribute zero but are never excluded and never fail the run.
	total := Aggregate(logs, Key{Item: "tin", Branch: "A", OrganizationID: "org-1"})
	assert.InDelta(t, 5, total.Quantity.Float64(), 1e-9)
}

func TestAggregate_EmptyAndNoMatch(t *testing.T) {
	assert.True(t, Aggregate(nil, Key{Item: "x"}).Quantity.IsZero())

	logs := []Log{log("Brass", "A", "org-1", "3")}
	total := Aggregate(logs, Key{Item: "Steel", Branch: "A", OrganizationID: "org-1"})
	assert.True(t, total.Quantity.IsZero())
}

func TestAggregate_Idempotent(t *testing.T) {
	logs := []Log{
		log("Copper", "A", "org-1", "10"),
		log("Copper", "A", "org-1", "5.5"),
	}
	key := Key{Item: "copper", Branch: "A", OrganizationID: "org-1"}

	first := Aggregate(logs, key)
	second := Aggregate(logs, key)
	assert.Equal(t, first, second)
}

func TestTotal_Display(t *testing.T) {
	logs := []Log{log("Copper", "A", "org-1", "15234.5")}
	total := Aggregate(logs, Key{Item: "copper", Branch: "A", OrganizationID: "org-1"})
	assert.Equal(t, "15,234.50", total.Display())
}

func TestLog_Validate(t *testing.T) {
	valid := NewLog("Copper", "A", "org-1", "10")
	assert.NoError(t, valid.Validate(t.Context()))

	missingBranch := NewLog("Copper", "  ", "org-1", "10")
	assert.Error(t, missingBranch.Validate(t.Context()))

	missingItem := NewLog("", "A", "org-1", "10")
	assert.Error(t, missingItem.Validate(t.Context()))
}
