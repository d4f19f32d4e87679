package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupMinimalTestDB creates a minimal test database for owner filter tests
func setupMinimalTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

// SimpleModel is a minimal model for testing the owner filter
type SimpleModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Name   string
	UserID uuid.UUID `gorm:"type:uuid;column:user_id"`
}

func TestApplyOwnerFilter_Authenticated(t *testing.T) {
	db := setupMinimalTestDB(t)
	_ = db.AutoMigrate(&SimpleModel{})

	userID := uuid.New()
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: userID})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repository.ApplyOwnerFilter(ctx, tx.Model(&SimpleModel{})).Find(&[]SimpleModel{})
	})

	assert.Contains(t, sql, "user_id", "Query should filter by user_id")
	assert.Contains(t, sql, userID.String(), "Query should carry the authenticated user's id")
}

func TestApplyOwnerFilter_Unauthenticated(t *testing.T) {
	db := setupMinimalTestDB(t)
	_ = db.AutoMigrate(&SimpleModel{})

	// Without an identity in the context, the filter compares against
	// the nil UUID so the query matches no rows.
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repository.ApplyOwnerFilter(context.Background(), tx.Model(&SimpleModel{})).Find(&[]SimpleModel{})
	})

	assert.Contains(t, sql, "user_id", "Query should still filter by user_id")
	assert.Contains(t, sql, uuid.Nil.String(), "Unauthenticated queries should compare against the nil UUID")
}

func TestApplyOwnerFilterWithAlias(t *testing.T) {
	db := setupMinimalTestDB(t)
	_ = db.AutoMigrate(&SimpleModel{})

	userID := uuid.New()
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: userID})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repository.ApplyOwnerFilterWithAlias(ctx, tx.Model(&SimpleModel{}), "visits").Find(&[]SimpleModel{})
	})

	assert.Contains(t, sql, "visits.user_id", "Query should contain qualified column name")
}
