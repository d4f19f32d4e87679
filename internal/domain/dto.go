package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type ClientDTO struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"companyName"`
	CNPJ          string    `json:"cnpj"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

// ClientWithDetailsDTO includes client data with visit history and statistics
type ClientWithDetailsDTO struct {
	ClientDTO
	Stats  *ClientStatsDTO `json:"stats,omitempty"`
	Visits []VisitDTO      `json:"visits"`
}

// ClientStatsDTO holds aggregated statistics for a client
type ClientStatsDTO struct {
	TotalVisits  int     `json:"totalVisits"`
	TotalRevenue float64 `json:"totalRevenue"`
	SuccessRate  float64 `json:"successRate"`
}

type VisitDTO struct {
	ID          uuid.UUID   `json:"id"`
	ClientID    uuid.UUID   `json:"clientId"`
	ClientName  string      `json:"clientName,omitempty"`
	VisitDate   string      `json:"visitDate"` // ISO 8601 date
	Result      VisitResult `json:"result"`
	Product     string      `json:"product,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Attachments []string    `json:"attachments,omitempty"`
	CreatedAt   string      `json:"createdAt"` // ISO 8601
}

type WeeklyScheduleDTO struct {
	ID        uuid.UUID `json:"id"`
	WeekStart string    `json:"weekStart"` // ISO 8601 date, a Sunday
	Cities    []string  `json:"cities"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// DashboardDTO is the response body for the dashboard endpoint.
// clientsWithoutVisit is the count; inactiveClients carries the rows
// behind it so the dashboard can render the follow-up list.
type DashboardDTO struct {
	VisitsThisWeek      int         `json:"visitsThisWeek"`
	Purchases           int         `json:"purchases"`
	ConversionRate      int         `json:"conversionRate"`
	EstimatedRevenue    float64     `json:"estimatedRevenue"`
	ClientsWithoutVisit int         `json:"clientsWithoutVisit"`
	InactiveClients     []ClientDTO `json:"inactiveClients"`
}

// FileUploadResponse is returned after a successful attachment upload
type FileUploadResponse struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// ImportResultDTO summarizes an ERP warehouse import run
type ImportResultDTO struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Request DTOs

type CreateClientRequest struct {
	CompanyName   string   `json:"companyName" validate:"required,max=200"`
	CNPJ          string   `json:"cnpj" validate:"required,max=20"`
	ContactPerson string   `json:"contactPerson" validate:"required,max=200"`
	Phone         string   `json:"phone" validate:"required,max=50"`
	Email         string   `json:"email" validate:"required,email"`
	Address       string   `json:"address" validate:"required,max=255"`
	City          string   `json:"city" validate:"required,max=100"`
	State         string   `json:"state" validate:"required,len=2"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Notes         string   `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	CompanyName   string   `json:"companyName" validate:"required,max=200"`
	CNPJ          string   `json:"cnpj" validate:"required,max=20"`
	ContactPerson string   `json:"contactPerson" validate:"required,max=200"`
	Phone         string   `json:"phone" validate:"required,max=50"`
	Email         string   `json:"email" validate:"required,email"`
	Address       string   `json:"address" validate:"required,max=255"`
	City          string   `json:"city" validate:"required,max=100"`
	State         string   `json:"state" validate:"required,len=2"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Notes         string   `json:"notes,omitempty"`
}

// CreateVisitRequest contains the data needed to record a visit.
// Price arrives as free text from the client form; empty or
// unparseable values are stored as NULL.
type CreateVisitRequest struct {
	ClientID    uuid.UUID   `json:"clientId" validate:"required"`
	VisitDate   string      `json:"visitDate" validate:"required"`
	Result      VisitResult `json:"result" validate:"required"`
	Product     string      `json:"product,omitempty" validate:"max=200"`
	Price       string      `json:"price,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Attachments []string    `json:"attachments,omitempty" validate:"max=10,dive,max=500"`
}

type UpsertScheduleRequest struct {
	WeekStart string   `json:"weekStart" validate:"required"` // YYYY-MM-DD
	Cities    []string `json:"cities" validate:"required,min=1,dive,required,max=100"`
}
