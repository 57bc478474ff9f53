package entities

import "time"

// IrrigationRecord is an append-only log of an irrigation action actually
// taken, whether calculated ad hoc or completed off the lifecycle schedule.
type IrrigationRecord struct {
	RecordID        uint      `gorm:"primaryKey" json:"record_id"`
	FarmerID        uint      `gorm:"index" json:"farmer_id"`
	CropID          uint      `gorm:"index" json:"crop_id"`
	City            string    `json:"city"`
	Stage           string    `json:"stage"`
	DaysAfterSowing int       `json:"days_after_sowing"`
	ET0             float64   `json:"et0"`
	Kc              float64   `json:"kc"`
	WaterRequired   float64   `json:"water_required"`
	Decision        string    `json:"decision"`
	RecordedAt      time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`
}
