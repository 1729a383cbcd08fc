package models

import (
	"time"
)

// User represents a worker in the marketplace (electrician, plumber, etc.)
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Phone           string    `gorm:"not null" json:"phone"`
	Address         string    `gorm:"not null" json:"address"`
	WorkType        string    `gorm:"not null" json:"workType"` // e.g. electrician, plumber
	District        string    `gorm:"not null" json:"district"`
	Mandal          string    `gorm:"not null" json:"mandal"`
	Pincode         int       `gorm:"not null" json:"pincode"`
	Area            string    `json:"area"`
	Colony          string    `json:"colony"`
	State           string    `json:"state"`
	Age             *int      `json:"age"`
	ExperienceYears *int      `json:"experienceYears"`
	Password        string    `gorm:"not null" json:"-"`
	Registered      bool      `gorm:"default:true" json:"registered"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
