package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCard(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	valid := CardDetails{Number: "4242424242424242", CVV: "123", ExpMonth: 12, ExpYear: 2027}

	tests := []struct {
		name      string
		mutate    func(c *CardDetails)
		wantField string
	}{
		{"valid card", func(c *CardDetails) {}, ""},
		{"short number", func(c *CardDetails) { c.Number = "4242" }, "card_number"},
		{"alpha number", func(c *CardDetails) { c.Number = "42424242424242ab" }, "card_number"},
		{"short cvv", func(c *CardDetails) { c.CVV = "12" }, "cvv"},
		{"alpha cvv", func(c *CardDetails) { c.CVV = "12x" }, "cvv"},
		{"month zero", func(c *CardDetails) { c.ExpMonth = 0 }, "expiry"},
		{"month thirteen", func(c *CardDetails) { c.ExpMonth = 13 }, "expiry"},
		{"expired last year", func(c *CardDetails) { c.ExpMonth = 3; c.ExpYear = 2025 }, "expiry"},
		{"expired last month", func(c *CardDetails) { c.ExpMonth = 2; c.ExpYear = 2026 }, "expiry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := valid
			tt.mutate(&card)

			fields := ValidateCard(&card, now)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateCardCurrentMonthStillValid(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	card := CardDetails{Number: "4242424242424242", CVV: "123", ExpMonth: 3, ExpYear: 2026}

	assert.Nil(t, ValidateCard(&card, now), "a card expiring this month is valid through month end")
}

func TestValidateCardNil(t *testing.T) {
	fields := ValidateCard(nil, time.Now())
	assert.Contains(t, fields, "card")
}
