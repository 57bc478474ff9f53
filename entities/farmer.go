package entities

import "time"

type Farmer struct {
	FarmerID     uint       `gorm:"primaryKey" json:"farmer_id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"full_name"`
	Location     string     `json:"location"` // home district, used for weather lookups
	Phone        *string    `json:"phone,omitempty"`
	Email        *string    `json:"email,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
