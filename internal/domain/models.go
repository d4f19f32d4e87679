package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// VisitResult represents the outcome of a client visit
type VisitResult string

const (
	VisitResultPurchased    VisitResult = "purchased"
	VisitResultNotPurchased VisitResult = "not_purchased"
)

// IsValid checks if the VisitResult is a valid enum value
func (vr VisitResult) IsValid() bool {
	switch vr {
	case VisitResultPurchased, VisitResultNotPurchased:
		return true
	}
	return false
}

// Client represents a company in a sales rep's portfolio.
// Every client belongs to exactly one rep (UserID); all queries
// are scoped by that column.
type Client struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	CompanyName   string    `gorm:"type:varchar(200);not null;index;column:company_name"`
	CNPJ          string    `gorm:"type:varchar(20);not null;column:cnpj"`
	ContactPerson string    `gorm:"type:varchar(200);not null;column:contact_person"`
	Phone         string    `gorm:"type:varchar(50);not null"`
	Email         string    `gorm:"type:varchar(255);not null"`
	Address       string    `gorm:"type:varchar(255);not null"`
	City          string    `gorm:"type:varchar(100);not null"`
	State         string    `gorm:"type:varchar(2);not null"`
	Latitude      *float64  `gorm:"type:decimal(10,7)"`
	Longitude     *float64  `gorm:"type:decimal(10,7)"`
	Notes         string    `gorm:"type:text"`
	Visits        []Visit   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// Visit represents a recorded visit to a client. Visits are immutable
// after creation except for deletion.
type Visit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id"`
	ClientID    uuid.UUID      `gorm:"type:uuid;not null;index;column:client_id"`
	Client      *Client        `gorm:"foreignKey:ClientID"`
	VisitDate   time.Time      `gorm:"type:date;not null;index;column:visit_date"`
	Result      VisitResult    `gorm:"type:varchar(20);not null"`
	Product     string         `gorm:"type:varchar(200)"`
	Price       *float64       `gorm:"type:decimal(15,2)"`
	Notes       string         `gorm:"type:text"`
	Attachments pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// WeeklySchedule represents the cities a rep plans to cover in the
// week starting at WeekStart (a Sunday).
type WeeklySchedule struct {
	BaseModel
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_schedule_user_week;column:user_id"`
	WeekStart time.Time      `gorm:"type:date;not null;uniqueIndex:idx_schedule_user_week;column:week_start"`
	Cities    pq.StringArray `gorm:"type:text[];not null"`
}

// TableName overrides the default table name to match the migration
func (WeeklySchedule) TableName() string {
	return "weekly_schedule"
}

// DashboardMetrics holds the computed weekly numbers shown on the
// dashboard. Never persisted; recomputed from current data on every
// request.
type DashboardMetrics struct {
	VisitsThisWeek   int
	Purchases        int
	ConversionRate   int
	EstimatedRevenue float64
	InactiveClients  []Client
}
