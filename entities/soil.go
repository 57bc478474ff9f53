package entities

import "time"

type SoilRecord struct {
	SoilID        uint      `gorm:"primaryKey" json:"soil_id"`
	FarmerID      uint      `gorm:"index" json:"farmer_id"`
	CropID        uint      `gorm:"index" json:"crop_id"`
	N             float64   `json:"n"`
	P             float64   `json:"p"`
	K             float64   `json:"k"`
	Ph            float64   `json:"ph"`
	Moisture      float64   `json:"moisture"`
	Sand          float64   `json:"sand"`
	Clay          float64   `json:"clay"`
	SoilFertility string    `json:"soil_fertility"`
	RecordedAt    time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`
}
