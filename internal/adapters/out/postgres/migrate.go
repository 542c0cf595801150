package postgres

import (
	"context"

	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/profilerepo"
	"backoffice/internal/adapters/out/postgres/riderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, riders and profiles tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&profilerepo.ProfileDTO{},
		&riderrepo.RiderDTO{},
		&orderrepo.OrderDTO{},
	)
}
