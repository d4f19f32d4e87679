package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/mapper"
	"github.com/stretchr/testify/assert"
)

func TestToClientDTO(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	client := &domain.Client{
		CompanyName:   "Padaria Central",
		CNPJ:          "12.345.678/0001-90",
		ContactPerson: "Maria Silva",
		Phone:         "(19) 3234-5678",
		Email:         "contato@padariacentral.com.br",
		Address:       "Rua Barao de Jaguara, 1200",
		City:          "Campinas",
		State:         "SP",
	}
	client.ID = uuid.New()
	client.CreatedAt = created
	client.UpdatedAt = created

	dto := mapper.ToClientDTO(client)

	assert.Equal(t, client.ID, dto.ID)
	assert.Equal(t, "Padaria Central", dto.CompanyName)
	assert.Equal(t, "Campinas", dto.City)
	assert.Equal(t, "SP", dto.State)
	assert.Nil(t, dto.Latitude)
	assert.Equal(t, "2024-05-01T10:30:00Z", dto.CreatedAt)
}

func TestToVisitDTO_DateFormatting(t *testing.T) {
	price := 199.90
	visit := &domain.Visit{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		VisitDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local),
		Result:    domain.VisitResultPurchased,
		Price:     &price,
		CreatedAt: time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC),
	}

	dto := mapper.ToVisitDTO(visit)

	assert.Equal(t, "2024-05-03", dto.VisitDate)
	assert.Equal(t, "2024-05-03T14:00:00Z", dto.CreatedAt)
	assert.Equal(t, domain.VisitResultPurchased, dto.Result)
	assert.NotNil(t, dto.Price)
}

func TestToVisitDTO_ClientName(t *testing.T) {
	visit := &domain.Visit{
		ID:        uuid.New(),
		VisitDate: time.Now(),
		Result:    domain.VisitResultNotPurchased,
	}

	dto := mapper.ToVisitDTO(visit)
	assert.Empty(t, dto.ClientName)

	visit.Client = &domain.Client{CompanyName: "Mercado Bom Preco"}
	dto = mapper.ToVisitDTO(visit)
	assert.Equal(t, "Mercado Bom Preco", dto.ClientName)
}

func TestToDashboardDTO(t *testing.T) {
	inactive := domain.Client{CompanyName: "Distribuidora Sul"}
	inactive.ID = uuid.New()

	metrics := &domain.DashboardMetrics{
		VisitsThisWeek:   3,
		Purchases:        2,
		ConversionRate:   67,
		EstimatedRevenue: 150.0,
		InactiveClients:  []domain.Client{inactive},
	}

	dto := mapper.ToDashboardDTO(metrics)

	assert.Equal(t, 3, dto.VisitsThisWeek)
	assert.Equal(t, 67, dto.ConversionRate)
	assert.Equal(t, 1, dto.ClientsWithoutVisit)
	assert.Len(t, dto.InactiveClients, 1)
	assert.Equal(t, "Distribuidora Sul", dto.InactiveClients[0].CompanyName)
}

func TestToDashboardDTO_EmptyInactiveListStaysNonNil(t *testing.T) {
	metrics := &domain.DashboardMetrics{InactiveClients: []domain.Client{}}

	dto := mapper.ToDashboardDTO(metrics)

	assert.NotNil(t, dto.InactiveClients)
	assert.Empty(t, dto.InactiveClients)
	assert.Zero(t, dto.ClientsWithoutVisit)
}
