package service_test

import (
	"testing"
	"time"

	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func purchased(price *float64) domain.Visit {
	return domain.Visit{Result: domain.VisitResultPurchased, Price: price}
}

func notPurchased(price *float64) domain.Visit {
	return domain.Visit{Result: domain.VisitResultNotPurchased, Price: price}
}

func TestStartOfWeek(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "midweek maps to previous Sunday",
			now:      time.Date(2024, 3, 13, 15, 30, 0, 0, loc), // Wednesday
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:     "sunday maps to same day midnight",
			now:      time.Date(2024, 3, 10, 23, 59, 59, 0, loc),
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:     "saturday maps back six days",
			now:      time.Date(2024, 3, 16, 1, 0, 0, 0, loc),
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:     "week spanning month boundary",
			now:      time.Date(2024, 4, 2, 8, 0, 0, 0, loc), // Tuesday
			expected: time.Date(2024, 3, 31, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.StartOfWeek(tt.now)
			assert.True(t, got.Equal(tt.expected), "expected %v, got %v", tt.expected, got)
			assert.Equal(t, tt.now.Location(), got.Location())
		})
	}
}

func TestWeeklyMetrics_Empty(t *testing.T) {
	totals := service.WeeklyMetrics(nil)

	assert.Equal(t, 0, totals.TotalVisits)
	assert.Equal(t, 0, totals.Purchases)
	assert.Equal(t, 0, totals.ConversionRate)
	assert.Equal(t, 0.0, totals.EstimatedRevenue)
}

func TestWeeklyMetrics_ConversionRateRounds(t *testing.T) {
	// 2 purchases out of 3 visits is 66.66..., which rounds to 67
	visits := []domain.Visit{
		purchased(nil),
		purchased(nil),
		notPurchased(nil),
	}

	totals := service.WeeklyMetrics(visits)

	assert.Equal(t, 3, totals.TotalVisits)
	assert.Equal(t, 2, totals.Purchases)
	assert.Equal(t, 67, totals.ConversionRate)
}

func TestWeeklyMetrics_ConversionRateRoundsDown(t *testing.T) {
	// 1 purchase out of 3 visits is 33.33..., which rounds to 33
	visits := []domain.Visit{
		purchased(nil),
		notPurchased(nil),
		notPurchased(nil),
	}

	totals := service.WeeklyMetrics(visits)

	assert.Equal(t, 33, totals.ConversionRate)
}

func TestWeeklyMetrics_RevenueCountsAllResults(t *testing.T) {
	// Estimated revenue includes prices from non-purchased visits too
	visits := []domain.Visit{
		purchased(ptr(100.50)),
		notPurchased(ptr(49.50)),
		purchased(nil),
	}

	totals := service.WeeklyMetrics(visits)

	assert.Equal(t, 3, totals.TotalVisits)
	assert.Equal(t, 2, totals.Purchases)
	assert.InDelta(t, 150.0, totals.EstimatedRevenue, 0.001)
}

func TestClientVisitStats_Empty(t *testing.T) {
	stats := service.ClientVisitStats(nil)

	assert.Equal(t, 0, stats.TotalVisits)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestClientVisitStats_RevenueOnlyFromPurchases(t *testing.T) {
	visits := []domain.Visit{
		purchased(ptr(200.0)),
		notPurchased(ptr(999.0)), // price on a lost visit does not count
		purchased(ptr(100.0)),
		notPurchased(nil),
	}

	stats := service.ClientVisitStats(visits)

	assert.Equal(t, 4, stats.TotalVisits)
	assert.InDelta(t, 300.0, stats.TotalRevenue, 0.001)
	assert.InDelta(t, 50.0, stats.SuccessRate, 0.001)
}

func TestClientVisitStats_SuccessRateIsFloat(t *testing.T) {
	visits := []domain.Visit{
		purchased(nil),
		notPurchased(nil),
		notPurchased(nil),
	}

	stats := service.ClientVisitStats(visits)

	assert.InDelta(t, 33.333333, stats.SuccessRate, 0.001)
}

func filterTestClients() []domain.Client {
	return []domain.Client{
		{CompanyName: "Padaria Central", City: "Campinas", ContactPerson: "Maria Silva", CNPJ: "12.345.678/0001-90"},
		{CompanyName: "Mercado Bom Preco", City: "Sorocaba", ContactPerson: "Joao Santos", CNPJ: "98.765.432/0001-10"},
		{CompanyName: "Distribuidora Sul", City: "campinas", ContactPerson: "Ana Costa", CNPJ: ""},
	}
}

func TestFilterClients_EmptyTermReturnsAll(t *testing.T) {
	clients := filterTestClients()

	assert.Len(t, service.FilterClients(clients, ""), 3)
	assert.Len(t, service.FilterClients(clients, "   "), 3)
	assert.Len(t, service.FilterClients(clients, "\t\n"), 3)
}

func TestFilterClients_CaseInsensitiveFields(t *testing.T) {
	clients := filterTestClients()

	byName := service.FilterClients(clients, "PADARIA")
	require.Len(t, byName, 1)
	assert.Equal(t, "Padaria Central", byName[0].CompanyName)

	byCity := service.FilterClients(clients, "Campinas")
	assert.Len(t, byCity, 2)

	byContact := service.FilterClients(clients, "ana")
	assert.Len(t, byContact, 1)
}

func TestFilterClients_CNPJIsCaseSensitiveLiteral(t *testing.T) {
	clients := []domain.Client{
		{CompanyName: "Empresa A", CNPJ: "ABC123"},
		{CompanyName: "Empresa B", CNPJ: "abc123"},
	}

	// Tax id is matched with the raw term: "ABC" matches only the
	// upper-case record through the cnpj field. The company name match
	// stays case-insensitive, so restrict names that would collide.
	matched := service.FilterClients(clients, "ABC")
	require.Len(t, matched, 1)
	assert.Equal(t, "Empresa A", matched[0].CompanyName)
}

func TestFilterClients_Idempotent(t *testing.T) {
	clients := filterTestClients()

	once := service.FilterClients(clients, "campinas")
	twice := service.FilterClients(once, "campinas")

	assert.Equal(t, once, twice)
}

func TestFilterClients_NoMatch(t *testing.T) {
	result := service.FilterClients(filterTestClients(), "inexistente")
	assert.Empty(t, result)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{name: "plain decimal", input: "199.90", expected: ptr(199.90)},
		{name: "integer", input: "500", expected: ptr(500)},
		{name: "with surrounding spaces", input: "  42.50  ", expected: ptr(42.50)},
		{name: "empty", input: "", expected: nil},
		{name: "whitespace only", input: "   ", expected: nil},
		{name: "free text", input: "a combinar", expected: nil},
		{name: "comma decimal separator", input: "199,90", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ParsePrice(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.expected, *got, 0.0001)
			}
		})
	}
}
