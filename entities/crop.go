package entities

import "time"

type CropStatus string

const (
	CropActive    CropStatus = "active"
	CropHarvested CropStatus = "harvested"
	CropFailed    CropStatus = "failed"
)

func (s CropStatus) Valid() bool {
	switch s {
	case CropActive, CropHarvested, CropFailed:
		return true
	}
	return false
}

type Crop struct {
	CropID         uint       `gorm:"primaryKey" json:"crop_id"`
	FarmerID       uint       `gorm:"index" json:"farmer_id"`
	CropName       string     `gorm:"not null" json:"crop_name"`
	FieldName      string     `gorm:"not null;default:'My Field'" json:"field_name"`
	PlantingDate   time.Time  `gorm:"not null" json:"planting_date"`
	GrowthDuration int        `gorm:"not null;default:100" json:"growth_duration"` // days from planting to harvest
	Status         CropStatus `gorm:"not null;default:'active'" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}
