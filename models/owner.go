package models

import (
	"time"
)

// Owner represents a job poster (typically a small business)
type Owner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `gorm:"not null" json:"phone"`
	Address      string    `gorm:"not null" json:"address"`
	BusinessName string    `json:"businessName"`
	District     string    `json:"district"`
	Mandal       string    `json:"mandal"`
	Pincode      int       `json:"pincode"`
	Password     string    `gorm:"not null" json:"-"`
	Registered   bool      `gorm:"default:true" json:"registered"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Owner model
func (Owner) TableName() string {
	return "owners"
}
