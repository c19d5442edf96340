package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$-250.25", FormatCurrency(decimal.NewFromFloat(-250.25)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "92.0%", FormatPercent(0.92))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(1))
	assert.Equal(t, "33.3%", FormatPercent(1.0/3.0))
}
