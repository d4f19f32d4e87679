package repository

import (
	"context"

	"github.com/reproute/crm-api/internal/auth"
	"gorm.io/gorm"
)

// ApplyOwnerFilter scopes a GORM query to the rows owned by the
// authenticated user. Every table carries a user_id column; there is no
// cross-user visibility in this system. When the context carries no
// identity the filter compares against uuid.Nil, which matches no rows.
func ApplyOwnerFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	return query.Where("user_id = ?", auth.UserIDFromContext(ctx))
}

// ApplyOwnerFilterWithAlias applies the owner filter using a table alias.
// Use this when joining multiple tables and you need to specify which
// table's user_id to filter on.
func ApplyOwnerFilterWithAlias(ctx context.Context, query *gorm.DB, tableAlias string) *gorm.DB {
	return query.Where(tableAlias+".user_id = ?", auth.UserIDFromContext(ctx))
}
