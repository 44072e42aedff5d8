package fees

import (
	"testing"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes_Eligibility(t *testing.T) {
	tests := []struct {
		name        string
		country     string
		wantMethods []string
	}{
		{
			name:        "default gets swift and crypto",
			country:     "Japan",
			wantMethods: []string{"Cryptocurrency (USDC/USDT)", "SWIFT Wire Transfer"},
		},
		{
			name:        "usa adds ach",
			country:     "USA",
			wantMethods: []string{"ACH Transfer", "Cryptocurrency (USDC/USDT)", "SWIFT Wire Transfer"},
		},
		{
			name:        "germany adds sepa",
			country:     "Germany",
			wantMethods: []string{"SEPA Transfer", "Cryptocurrency (USDC/USDT)", "SWIFT Wire Transfer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &models.PaymentEntry{Amount: decimal.NewFromInt(1000), Country: tt.country}

			routes := Routes(entry)

			var methods []string
			for _, r := range routes {
				methods = append(methods, r.Method)
			}
			assert.Equal(t, tt.wantMethods, methods)
		})
	}
}

func TestRoutes_SortedByCost(t *testing.T) {
	entry := &models.PaymentEntry{Amount: decimal.NewFromInt(1000), Country: "Germany"}

	routes := Routes(entry)

	require.NotEmpty(t, routes)
	for i := 1; i < len(routes); i++ {
		assert.True(t, routes[i-1].Cost.LessThanOrEqual(routes[i].Cost))
	}
	// SEPA: 1000 * 0.002 + 2 = 4.00
	assert.True(t, routes[0].Cost.Equal(decimal.NewFromInt(4)), "got %s", routes[0].Cost)
}

func TestEstimate_PicksCheapestRoute(t *testing.T) {
	entry := &models.PaymentEntry{Amount: decimal.NewFromInt(1000)}

	Estimate(entry)

	// Crypto: 1000 * 0.005 + 10 = 15.00, cheaper than SWIFT's 40.00.
	assert.Equal(t, "Cryptocurrency (USDC/USDT)", entry.Route)
	assert.True(t, entry.EstimatedFee.Equal(decimal.NewFromInt(15)), "got %s", entry.EstimatedFee)
}

func TestEstimateAll(t *testing.T) {
	entries := []models.PaymentEntry{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromInt(1000), Country: "Germany"},
	}

	EstimateAll(entries)

	assert.False(t, entries[0].EstimatedFee.IsZero())
	assert.Equal(t, "SEPA Transfer", entries[1].Route)
}
