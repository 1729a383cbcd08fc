package models

import (
	"time"
)

// JobApplication represents a worker's application to a job. Worker name and
// skill are denormalized copies taken at apply time, not joins.
type JobApplication struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_job_worker" json:"jobId"`
	WorkerID    uint      `gorm:"not null;uniqueIndex:idx_job_worker" json:"workerId"`
	WorkerName  string    `gorm:"not null" json:"workerName"`
	WorkerSkill string    `gorm:"not null" json:"workerSkill"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"` // pending, accepted, rejected
	AppliedAt   time.Time `gorm:"autoCreateTime" json:"appliedAt"`
}

// TableName specifies the table name for the JobApplication model
func (JobApplication) TableName() string {
	return "job_applications"
}
