package models

import (
	"time"
)

// Job represents a job posted by an owner
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	Title       string    `gorm:"not null" json:"title"`
	SkillNeeded string    `gorm:"not null" json:"skillNeeded"`
	Location    string    `json:"location"`
	Pay         float64   `json:"pay"`
	Duration    string    `json:"duration"`
	Status      string    `gorm:"not null;default:'open'" json:"status"` // open, filled, closed
	Pincode     *int      `json:"pincode"`
	Area        string    `json:"area"`
	Colony      string    `json:"colony"`
	State       string    `json:"state"`
	Lat         *float64  `json:"lat"` // resolved by geocoding, absent when lookup fails
	Lon         *float64  `json:"lon"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}
