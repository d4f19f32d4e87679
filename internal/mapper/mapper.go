package mapper

import (
	"github.com/reproute/crm-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:            client.ID,
		CompanyName:   client.CompanyName,
		CNPJ:          client.CNPJ,
		ContactPerson: client.ContactPerson,
		Phone:         client.Phone,
		Email:         client.Email,
		Address:       client.Address,
		City:          client.City,
		State:         client.State,
		Latitude:      client.Latitude,
		Longitude:     client.Longitude,
		Notes:         client.Notes,
		CreatedAt:     client.CreatedAt.Format(timeFormat),
		UpdatedAt:     client.UpdatedAt.Format(timeFormat),
	}
}

// ToClientDTOs converts a slice of Clients
func ToClientDTOs(clients []domain.Client) []domain.ClientDTO {
	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = ToClientDTO(&clients[i])
	}
	return dtos
}

// ToVisitDTO converts Visit to VisitDTO
func ToVisitDTO(visit *domain.Visit) domain.VisitDTO {
	dto := domain.VisitDTO{
		ID:          visit.ID,
		ClientID:    visit.ClientID,
		VisitDate:   visit.VisitDate.Format("2006-01-02"),
		Result:      visit.Result,
		Product:     visit.Product,
		Price:       visit.Price,
		Notes:       visit.Notes,
		Attachments: visit.Attachments,
		CreatedAt:   visit.CreatedAt.Format(timeFormat),
	}
	if visit.Client != nil {
		dto.ClientName = visit.Client.CompanyName
	}
	return dto
}

// ToVisitDTOs converts a slice of Visits
func ToVisitDTOs(visits []domain.Visit) []domain.VisitDTO {
	dtos := make([]domain.VisitDTO, len(visits))
	for i := range visits {
		dtos[i] = ToVisitDTO(&visits[i])
	}
	return dtos
}

// ToWeeklyScheduleDTO converts WeeklySchedule to WeeklyScheduleDTO
func ToWeeklyScheduleDTO(entry *domain.WeeklySchedule) domain.WeeklyScheduleDTO {
	return domain.WeeklyScheduleDTO{
		ID:        entry.ID,
		WeekStart: entry.WeekStart.Format("2006-01-02"),
		Cities:    entry.Cities,
		CreatedAt: entry.CreatedAt.Format(timeFormat),
		UpdatedAt: entry.UpdatedAt.Format(timeFormat),
	}
}

// ToDashboardDTO converts DashboardMetrics to DashboardDTO
func ToDashboardDTO(metrics *domain.DashboardMetrics) domain.DashboardDTO {
	return domain.DashboardDTO{
		VisitsThisWeek:      metrics.VisitsThisWeek,
		Purchases:           metrics.Purchases,
		ConversionRate:      metrics.ConversionRate,
		EstimatedRevenue:    metrics.EstimatedRevenue,
		ClientsWithoutVisit: len(metrics.InactiveClients),
		InactiveClients:     ToClientDTOs(metrics.InactiveClients),
	}
}
