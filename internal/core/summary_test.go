package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(cat Category, cents int64) Expense {
	return Expense{Description: "x", Amount: Money{Cents: cents}, Category: cat}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, int64(0), s.Total.Cents)
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.Shares)
}

func TestSummarizeTwoCategories(t *testing.T) {
	s := Summarize([]Expense{
		expense(CategoryFood, 6000),
		expense(CategoryTransport, 4000),
	})

	assert.Equal(t, int64(10000), s.Total.Cents)
	require.Len(t, s.Shares, 2)

	// Food at 60% is over the threshold and gets the cautionary tip.
	assert.Equal(t, CategoryFood, s.Shares[0].Category)
	assert.InDelta(t, 60.0, s.Shares[0].Percentage, 1e-9)
	assert.Equal(t, "\U0001F4A1 Tip: "+categoryTips[CategoryFood], s.Shares[0].Message)

	// Transport at 40% gets the reassuring message.
	assert.Equal(t, CategoryTransport, s.Shares[1].Category)
	assert.InDelta(t, 40.0, s.Shares[1].Percentage, 1e-9)
	assert.Equal(t, underControlText, s.Shares[1].Message)
}

func TestSummarizeOmitsAbsentCategories(t *testing.T) {
	s := Summarize([]Expense{expense(CategoryHealth, 500)})
	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, CategoryHealth, s.ByCategory[0].Category)
}

func TestSummarizeExactlyHalfIsReassuring(t *testing.T) {
	// The threshold is strictly greater-than 50.
	s := Summarize([]Expense{
		expense(CategoryFood, 5000),
		expense(CategoryHousing, 5000),
	})
	require.Len(t, s.Shares, 2)
	for _, share := range s.Shares {
		assert.Equal(t, underControlText, share.Message)
	}
}

func TestSummarizeTieBreakIsEnumOrder(t *testing.T) {
	s := Summarize([]Expense{
		expense(CategoryHealth, 2500),
		expense(CategoryFood, 2500),
		expense(CategoryTransport, 5000),
	})
	require.Len(t, s.Shares, 3)
	assert.Equal(t, CategoryTransport, s.Shares[0].Category)
	// Food and Health both at 25%: Food comes first in the enum order.
	assert.Equal(t, CategoryFood, s.Shares[1].Category)
	assert.Equal(t, CategoryHealth, s.Shares[2].Category)
}

func TestSummarizeZeroTotalHasNoShares(t *testing.T) {
	s := Summarize([]Expense{expense(CategoryFood, 0)})
	assert.Equal(t, int64(0), s.Total.Cents)
	// The category total is still present; percentages are not.
	require.Len(t, s.ByCategory, 1)
	assert.Empty(t, s.Shares)
}

func TestSummarizeIdempotent(t *testing.T) {
	in := []Expense{
		expense(CategoryFood, 1234),
		expense(CategoryOther, 567),
		expense(CategoryFood, 89),
	}
	assert.Equal(t, Summarize(in), Summarize(in))
}
