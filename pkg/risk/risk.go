// Package risk performs rule-table compliance screening for proposed
// payments: transaction limits, sanctions matching, and country
// restrictions. Screening annotates entries; it never drops them, so a
// blocked payment still reaches the human reviewer.
package risk

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	highRiskCountries   = []string{"Iran", "North Korea", "Syria", "Cuba", "Afghanistan"}
	mediumRiskCountries = []string{"Russia", "Belarus", "Myanmar", "Venezuela"}
	sanctionedEntities  = []string{"Evil Corp", "Bad Actor Inc", "Sanctioned Entity", "Blocked Company"}

	highAmountThreshold   = decimal.NewFromInt(50_000)
	mediumAmountThreshold = decimal.NewFromInt(10_000)
	dailyLimit            = decimal.NewFromInt(100_000)
)

// Assessor screens payment entries against the compliance rule table.
type Assessor struct {
	// FlagRate is the probability that an otherwise approved payment is
	// flagged for manual review, simulating an automated screening system.
	// Zero disables the behavior.
	FlagRate float64
	rng      *rand.Rand
}

// NewAssessor creates an Assessor with the given random source. A nil rng
// disables random screening flags.
func NewAssessor(flagRate float64, rng *rand.Rand) *Assessor {
	return &Assessor{FlagRate: flagRate, rng: rng}
}

// Screen assesses a single entry and returns its screening record.
func (a *Assessor) Screen(entry *models.PaymentEntry) models.Screening {
	var factors []string
	score := 0.0
	status := models.ScreeningApproved

	switch {
	case entry.Amount.GreaterThan(highAmountThreshold):
		factors = append(factors, "High amount transaction (>$50,000)")
		score += 0.3
	case entry.Amount.GreaterThan(mediumAmountThreshold):
		factors = append(factors, "Medium amount transaction (>$10,000)")
		score += 0.1
	}

	country := strings.TrimSpace(entry.Country)
	if matchesCountry(country, highRiskCountries) {
		factors = append(factors, fmt.Sprintf("High-risk destination country: %s", country))
		score += 0.8
		status = models.ScreeningBlocked
	} else if matchesCountry(country, mediumRiskCountries) {
		factors = append(factors, fmt.Sprintf("Medium-risk destination country: %s", country))
		score += 0.4
	}

	switch method(entry) {
	case "crypto":
		factors = append(factors, "Cryptocurrency payment method")
		score += 0.2
	case "swift":
		factors = append(factors, "SWIFT international transfer")
		score += 0.1
	}

	if name, ok := sanctionsMatch(entry.Recipient); ok {
		factors = append(factors, fmt.Sprintf("Recipient matches sanctions list: %s", name))
		score += 1.0
		status = models.ScreeningBlocked
	}

	if entry.Amount.GreaterThan(dailyLimit) {
		factors = append(factors, "Exceeds daily limit of $100,000.00")
		score += 0.5
		if status != models.ScreeningBlocked {
			status = models.ScreeningNeedsApproval
		}
	}

	var level string
	switch {
	case score >= 0.8:
		status = models.ScreeningBlocked
		level = "HIGH"
	case score >= 0.4:
		if status != models.ScreeningBlocked {
			status = models.ScreeningNeedsApproval
		}
		level = "MEDIUM"
	case score >= 0.2:
		if status != models.ScreeningBlocked && status != models.ScreeningNeedsApproval {
			status = models.ScreeningMonitored
		}
		level = "LOW-MEDIUM"
	default:
		level = "LOW"
	}

	if a.rng != nil && status == models.ScreeningApproved && a.rng.Float64() < a.FlagRate {
		factors = append(factors, "Flagged by automated screening system")
		status = models.ScreeningManualReview
	}

	return models.Screening{
		Status:    status,
		RiskLevel: level,
		RiskScore: score,
		Factors:   factors,
	}
}

// ScreenAll annotates every entry in place.
func (a *Assessor) ScreenAll(entries []models.PaymentEntry) {
	for i := range entries {
		sc := a.Screen(&entries[i])
		entries[i].Screening = &sc
	}
}

// Crypto wallet addresses route as crypto; everything else wires over SWIFT.
func method(entry *models.PaymentEntry) string {
	if strings.HasPrefix(strings.ToLower(entry.Recipient), "0x") {
		return "crypto"
	}
	return "swift"
}

func matchesCountry(country string, list []string) bool {
	for _, c := range list {
		if strings.EqualFold(country, c) {
			return true
		}
	}
	return false
}

func sanctionsMatch(recipient string) (string, bool) {
	upper := strings.ToUpper(recipient)
	for _, name := range sanctionedEntities {
		if strings.Contains(upper, strings.ToUpper(name)) {
			return name, true
		}
	}
	return "", false
}
