package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
	"gorm.io/gorm"
)

// ApplyRequest represents the request body for applying to a job
type ApplyRequest struct {
	JobID       uint   `json:"jobId" binding:"required"`
	WorkerID    uint   `json:"workerId" binding:"required"`
	WorkerName  string `json:"workerName" binding:"required"`
	WorkerSkill string `json:"workerSkill" binding:"required"`
}

// ApplyForJob handles POST /api/applications - records a worker's application
// to a job. Applying twice for the same job answers 409 with the existing
// application instead of inserting a duplicate.
func ApplyForJob(c *gin.Context) {
	// Parse request body
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Check whether this worker already applied for this job
	var existing models.JobApplication
	err := db.Where("job_id = ? AND worker_id = ?", req.JobID, req.WorkerID).First(&existing).Error
	if err == nil {
		respondAlreadyApplied(c, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Error(err)
		return
	}

	application := models.JobApplication{
		JobID:       req.JobID,
		WorkerID:    req.WorkerID,
		WorkerName:  req.WorkerName,
		WorkerSkill: req.WorkerSkill,
		Status:      models.ApplicationStatusPending,
	}

	if err := db.Create(&application).Error; err != nil {
		// A concurrent identical request can slip past the check above; the
		// composite unique index catches it, answer with the winner's record
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			if lookupErr := db.Where("job_id = ? AND worker_id = ?", req.JobID, req.WorkerID).
				First(&existing).Error; lookupErr == nil {
				respondAlreadyApplied(c, existing)
				return
			}
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job application submitted successfully",
		"data":    application,
	})
}

// respondAlreadyApplied writes the 409 carrying the surviving application
func respondAlreadyApplied(c *gin.Context, existing models.JobApplication) {
	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ALREADY_APPLIED",
			"message": "You have already applied for this job",
		},
		"data": existing,
	})
}

// ListApplicationsByJob handles GET /api/applications/job/:jobId - lists all
// applications for a job (owner view)
func ListApplicationsByJob(c *gin.Context) {
	db := config.GetDB()

	var applications []models.JobApplication
	if err := db.Where("job_id = ?", c.Param("jobId")).Find(&applications).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applications,
	})
}

// ListApplicationsByWorker handles GET /api/applications/worker/:workerId -
// lists a worker's applications with the referenced job's details joined in
// per row (worker view)
func ListApplicationsByWorker(c *gin.Context) {
	db := config.GetDB()

	var applications []models.JobApplication
	if err := db.Where("worker_id = ?", c.Param("workerId")).Find(&applications).Error; err != nil {
		c.Error(err)
		return
	}

	response := make([]gin.H, 0, len(applications))
	for _, app := range applications {
		entry := gin.H{
			"id":          app.ID,
			"jobId":       app.JobID,
			"workerId":    app.WorkerID,
			"workerName":  app.WorkerName,
			"workerSkill": app.WorkerSkill,
			"status":      app.Status,
			"appliedAt":   app.AppliedAt,
		}

		// Fetch job details for this application
		var job models.Job
		if err := db.First(&job, app.JobID).Error; err == nil {
			entry["jobTitle"] = job.Title
			entry["location"] = job.Location
			entry["pay"] = job.Pay
			entry["duration"] = job.Duration
		} else {
			// The job was deleted after the worker applied
			entry["jobTitle"] = "Job not found"
			entry["location"] = "-"
			entry["pay"] = "-"
		}

		response = append(response, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

// UpdateApplicationStatus handles PUT /api/applications/:id/status?status= -
// moves an application through its workflow (owner action)
func UpdateApplicationStatus(c *gin.Context) {
	status := c.Query("status")
	if !models.IsValidApplicationStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Application status must be one of: pending, accepted, rejected",
			},
		})
		return
	}

	db := config.GetDB()

	var application models.JobApplication
	if err := db.First(&application, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	if err := models.ValidateApplicationTransition(application.Status, status); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": err.Error(),
			},
		})
		return
	}

	application.Status = status
	if err := db.Save(&application).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    application,
	})
}
