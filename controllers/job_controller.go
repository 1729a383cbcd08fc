package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
	"github.com/osi-labs/shramsaathi-api/services"
)

// JobRequest represents the request body for creating or updating a job
type JobRequest struct {
	OwnerID     uint    `json:"ownerId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	SkillNeeded string  `json:"skillNeeded" binding:"required"`
	Location    string  `json:"location"`
	Pay         float64 `json:"pay"`
	Duration    string  `json:"duration"`
	Status      string  `json:"status" binding:"omitempty"`
	Pincode     *int    `json:"pincode"`
	Area        string  `json:"area"`
	Colony      string  `json:"colony"`
	State       string  `json:"state"`
}

// CreateJob handles POST /api/jobs - creates a new job posting
func CreateJob(c *gin.Context) {
	// Parse request body
	var req JobRequest
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

	// New jobs start open unless a valid status is supplied
	status := models.JobStatusOpen
	if req.Status != "" {
		if !models.IsValidJobStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Job status must be one of: open, filled, closed",
				},
			})
			return
		}
		status = req.Status
	}

	job := models.Job{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		SkillNeeded: req.SkillNeeded,
		Location:    req.Location,
		Pay:         req.Pay,
		Duration:    req.Duration,
		Status:      status,
		Pincode:     req.Pincode,
		Area:        req.Area,
		Colony:      req.Colony,
		State:       req.State,
	}

	// Best-effort coordinate resolution, the job saves either way
	resolveCoordinates(&job)

	db := config.GetDB()
	if err := db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJob handles PUT /api/jobs/:id - updates an existing job posting
func UpdateJob(c *gin.Context) {
	db := config.GetDB()

	var job models.Job
	if err := db.First(&job, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	var req JobRequest
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

	// Status moves are guarded, everything else is a plain overwrite
	if req.Status != "" && req.Status != job.Status {
		if !models.IsValidJobStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Job status must be one of: open, filled, closed",
				},
			})
			return
		}
		if err := models.ValidateJobTransition(job.Status, req.Status); err != nil {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": err.Error(),
				},
			})
			return
		}
		job.Status = req.Status
	}

	job.OwnerID = req.OwnerID
	job.Title = req.Title
	job.SkillNeeded = req.SkillNeeded
	job.Location = req.Location
	job.Pay = req.Pay
	job.Duration = req.Duration
	job.Pincode = req.Pincode
	job.Area = req.Area
	job.Colony = req.Colony
	job.State = req.State

	// The address may have changed, resolve again
	resolveCoordinates(&job)

	if err := db.Save(&job).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// DeleteJob handles DELETE /api/jobs/:id - deletes a job posting
func DeleteJob(c *gin.Context) {
	db := config.GetDB()

	// Fetch first so a missing id is a 404, not a silent no-op
	var job models.Job
	if err := db.First(&job, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	if err := db.Delete(&job).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted",
	})
}

// GetJob handles GET /api/jobs/:id - fetches a single job posting
func GetJob(c *gin.Context) {
	db := config.GetDB()

	var job models.Job
	if err := db.First(&job, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobs handles GET /api/jobs - lists all job postings
func ListJobs(c *gin.Context) {
	db := config.GetDB()

	var jobs []models.Job
	if err := db.Find(&jobs).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// ListJobsByOwner handles GET /api/jobs/owner/:ownerId - lists an owner's job postings
func ListJobsByOwner(c *gin.Context) {
	db := config.GetDB()

	var jobs []models.Job
	if err := db.Where("owner_id = ?", c.Param("ownerId")).Find(&jobs).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// SearchJobs handles GET /api/jobs/search?skill= - case-insensitive substring
// search over the skill needed
func SearchJobs(c *gin.Context) {
	skill := c.Query("skill")
	if skill == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Query parameter 'skill' is required",
			},
		})
		return
	}

	db := config.GetDB()

	var jobs []models.Job
	pattern := "%" + strings.ToLower(skill) + "%"
	if err := db.Where("LOWER(skill_needed) LIKE ?", pattern).Find(&jobs).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// resolveCoordinates fills in lat/lon from the job's address fragments when a
// geocoder is configured. Failures are logged and the job keeps whatever
// coordinates it had; a lookup never blocks the save.
func resolveCoordinates(job *models.Job) {
	query := services.ComposeAddress(job.Area, job.Colony, job.Location, job.State, job.Pincode)
	if query == "" {
		return
	}

	geocoder := services.GetGeocoder()
	if geocoder == nil {
		return
	}

	coords, err := geocoder.Resolve(query)
	if err != nil {
		log.Printf("Geocode lookup failed for %q: %v", query, err)
		return
	}
	if coords == nil {
		// No acceptable result for this address
		return
	}

	job.Lat = &coords.Lat
	job.Lon = &coords.Lon
}
