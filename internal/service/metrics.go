package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reproute/crm-api/internal/domain"
)

// Pure aggregation helpers shared by the dashboard and client detail
// endpoints. These operate on in-memory slices only; keeping them free
// of I/O makes the numbers easy to verify in isolation.

// StartOfWeek returns local midnight of the most recent Sunday relative
// to now. A Sunday maps to midnight of the same day.
func StartOfWeek(now time.Time) time.Time {
	day := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// WeeklyTotals holds the reduced numbers for a week of visits
type WeeklyTotals struct {
	TotalVisits      int
	Purchases        int
	ConversionRate   int
	EstimatedRevenue float64
}

// WeeklyMetrics reduces a week's visits into the dashboard totals.
// Conversion rate is a rounded integer percentage, 0 when there are no
// visits. Estimated revenue sums price over all visits regardless of
// result, treating missing prices as 0.
func WeeklyMetrics(visits []domain.Visit) WeeklyTotals {
	totals := WeeklyTotals{TotalVisits: len(visits)}
	for _, v := range visits {
		if v.Result == domain.VisitResultPurchased {
			totals.Purchases++
		}
		if v.Price != nil {
			totals.EstimatedRevenue += *v.Price
		}
	}
	if totals.TotalVisits > 0 {
		totals.ConversionRate = int(math.Round(float64(totals.Purchases) / float64(totals.TotalVisits) * 100))
	}
	return totals
}

// ClientVisitStats computes the per-client aggregates shown on the
// client detail page. Total revenue counts only purchased visits;
// success rate is a float percentage, 0 when there are no visits.
func ClientVisitStats(visits []domain.Visit) domain.ClientStatsDTO {
	stats := domain.ClientStatsDTO{TotalVisits: len(visits)}
	purchased := 0
	for _, v := range visits {
		if v.Result == domain.VisitResultPurchased {
			purchased++
			if v.Price != nil {
				stats.TotalRevenue += *v.Price
			}
		}
	}
	if stats.TotalVisits > 0 {
		stats.SuccessRate = float64(purchased) / float64(stats.TotalVisits) * 100
	}
	return stats
}

// FilterClients applies the search term to an in-memory client list.
// Company name, city and contact person are matched case-insensitively;
// the tax id is matched as a literal, case-sensitive substring. An
// empty or whitespace-only term returns the list unchanged. The filter
// is idempotent: applying it twice with the same term yields the same
// result as applying it once.
func FilterClients(clients []domain.Client, term string) []domain.Client {
	if strings.TrimSpace(term) == "" {
		return clients
	}

	lowered := strings.ToLower(term)
	filtered := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.CompanyName), lowered) ||
			strings.Contains(strings.ToLower(c.City), lowered) ||
			strings.Contains(strings.ToLower(c.ContactPerson), lowered) ||
			strings.Contains(c.CNPJ, term) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ParsePrice converts the free-text price field from the visit form
// into a nullable value. Empty or unparseable input yields nil; visits
// may carry a price with either result value.
func ParsePrice(s string) *float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}
