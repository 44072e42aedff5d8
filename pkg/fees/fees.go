// Package fees estimates transfer costs per payment by picking the cheapest
// eligible route from a fixed rail table.
package fees

import (
	"sort"
	"strings"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
)

// Route is one eligible payment rail with its cost for a given amount.
type Route struct {
	Method string
	Cost   decimal.Decimal
}

// rail is a fee schedule: percentage of the amount plus a fixed component.
type rail struct {
	method   string
	pct      decimal.Decimal
	fixed    decimal.Decimal
	eligible func(entry *models.PaymentEntry) bool
}

var sepaCountries = []string{"Germany", "France", "Italy", "Spain", "Netherlands", "Belgium"}

var rails = []rail{
	{
		method:   "SWIFT Wire Transfer",
		pct:      decimal.NewFromFloat(0.015),
		fixed:    decimal.NewFromInt(25),
		eligible: func(*models.PaymentEntry) bool { return true },
	},
	{
		method: "ACH Transfer",
		pct:    decimal.NewFromFloat(0.008),
		fixed:  decimal.NewFromInt(5),
		eligible: func(e *models.PaymentEntry) bool {
			c := strings.ToLower(e.Country)
			return c == "usa" || c == "united states" || c == "canada"
		},
	},
	{
		method:   "Cryptocurrency (USDC/USDT)",
		pct:      decimal.NewFromFloat(0.005),
		fixed:    decimal.NewFromInt(10),
		eligible: func(*models.PaymentEntry) bool { return true },
	},
	{
		method: "SEPA Transfer",
		pct:    decimal.NewFromFloat(0.002),
		fixed:  decimal.NewFromInt(2),
		eligible: func(e *models.PaymentEntry) bool {
			for _, c := range sepaCountries {
				if strings.EqualFold(e.Country, c) {
					return true
				}
			}
			return false
		},
	},
}

// Routes returns every eligible route for the entry, cheapest first.
func Routes(entry *models.PaymentEntry) []Route {
	var out []Route
	for _, r := range rails {
		if !r.eligible(entry) {
			continue
		}
		cost := entry.Amount.Mul(r.pct).Add(r.fixed).Round(2)
		out = append(out, Route{Method: r.method, Cost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cost.LessThan(out[j].Cost) })
	return out
}

// Estimate sets the entry's EstimatedFee and Route from its cheapest
// eligible route. The crypto rail is always eligible, so the route list is
// never empty.
func Estimate(entry *models.PaymentEntry) {
	routes := Routes(entry)
	entry.EstimatedFee = routes[0].Cost
	entry.Route = routes[0].Method
}

// EstimateAll annotates every entry in place.
func EstimateAll(entries []models.PaymentEntry) {
	for i := range entries {
		Estimate(&entries[i])
	}
}
