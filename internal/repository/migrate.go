package repository

import (
	"wellnessbook/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the application uses. The
// appointments table is migrated from the repository's own row model because
// it stores the calendar date as a plain string column.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ProviderProfile{},
		&domain.ServiceOffering{},
		&domain.Notification{},
		&appointmentModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return ensureNoOverlapConstraint(db)
	}
	return nil
}

// ensureNoOverlapConstraint installs the exclusion constraint that rejects
// two blocking appointments for the same provider on intersecting time
// ranges. The booking service maps its violation (SQLSTATE 23P01) to a
// slot-taken error. SQLite has no equivalent; there the pre-write overlap
// check is the only guard.
func ensureNoOverlapConstraint(db *gorm.DB) error {
	var n int64
	err := db.Raw(
		"SELECT count(*) FROM pg_constraint WHERE conname = ?",
		"appointments_no_overlap",
	).Scan(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// gist equality on scalar columns needs btree_gist
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	// int4range is half-open, so back-to-back appointments do not collide.
	return db.Exec(`
		ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (
			provider_id WITH =,
			appointment_date WITH =,
			int4range(
				split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int,
				split_part(end_time,   ':', 1)::int * 60 + split_part(end_time,   ':', 2)::int
			) WITH &&
		) WHERE (status NOT IN ('cancelled', 'no-show'))
	`).Error
}
