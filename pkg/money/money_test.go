package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Min(b, a).Equal(a))
	assert.True(t, Min(a, a).Equal(a))
	assert.True(t, Min(decimal.NewFromInt(-2), decimal.Zero).Equal(decimal.NewFromInt(-2)))
}

func TestClampNonNegative(t *testing.T) {
	assert.True(t, ClampNonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, ClampNonNegative(decimal.Zero).IsZero())
	assert.True(t, ClampNonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}
