package entities

import "time"

type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "pending"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleMissed    ScheduleStatus = "missed"
	ScheduleSkipped   ScheduleStatus = "skipped"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case SchedulePending, ScheduleCompleted, ScheduleMissed, ScheduleSkipped:
		return true
	}
	return false
}

// ScheduleEntry is one projected or realized irrigation event. Exactly one
// entry may exist per (crop, scheduled_date). Entries that are no longer
// pending are locked: only their own explicit transition (complete/skip)
// may touch them.
type ScheduleEntry struct {
	ScheduleID        uint           `gorm:"primaryKey" json:"schedule_id"`
	FarmerID          uint           `gorm:"index" json:"farmer_id"`
	CropID            uint           `gorm:"uniqueIndex:idx_crop_date" json:"crop_id"`
	ScheduledDate     time.Time      `gorm:"uniqueIndex:idx_crop_date" json:"scheduled_date"`
	WaterAmount       float64        `json:"water_amount"` // litres per plant
	Stage             string         `json:"stage"`
	Kc                float64        `json:"kc"`
	DaysAfterSowing   int            `json:"days_after_sowing"`
	EstimatedMoisture float64        `json:"estimated_moisture"` // pre-irrigation estimate
	Reason            string         `json:"reason"`
	Status            ScheduleStatus `gorm:"not null;default:'pending';index" json:"status"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	ActualWater       *float64       `json:"actual_water,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
