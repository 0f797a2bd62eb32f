package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPendingReview, StatusApproved, true},
		{StatusPendingReview, StatusArchived, true},
		{StatusApproved, StatusArchived, true}, // retraction
		{StatusApproved, StatusPendingReview, false},
		{StatusArchived, StatusApproved, false},
		{StatusArchived, StatusPendingReview, false},
		{StatusPendingReview, StatusPendingReview, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTaxonomyMembership(t *testing.T) {
	tax := DefaultTaxonomy()

	assert.True(t, tax.HasCategory("Planning"))
	assert.True(t, tax.HasCategory("Prompt Engineering General"))
	assert.False(t, tax.HasCategory("planning"), "membership is case-sensitive")
	assert.False(t, tax.HasCategory("Planning "))
	assert.False(t, tax.HasCategory(""))

	assert.True(t, tax.HasResourceType("Official Docs"))
	assert.False(t, tax.HasResourceType("official docs"))

	assert.True(t, tax.HasLanguage("Korean"))
	assert.False(t, tax.HasLanguage("korean"))

	assert.True(t, tax.HasResourceType(tax.DefaultResourceType), "default must be a member")
	assert.True(t, tax.HasLanguage(tax.DefaultLanguage), "default must be a member")
}
