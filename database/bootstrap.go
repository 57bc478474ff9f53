package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"krishi/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}

// Migrate creates or updates the schema. The unique index on
// (crop_id, scheduled_date) comes from the ScheduleEntry tags and backs
// the conditional upsert in the schedule repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Farmer{},
		&entities.Crop{},
		&entities.SoilRecord{},
		&entities.ScheduleEntry{},
		&entities.IrrigationRecord{},
	)
}
