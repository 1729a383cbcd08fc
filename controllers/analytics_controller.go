package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
)

// GetOwnerApplicationCounts handles GET /api/analytics/owner/:ownerId/application-counts -
// returns a map of job id to application count for the owner's jobs.
// Counts are computed per request, there is no materialized view.
func GetOwnerApplicationCounts(c *gin.Context) {
	db := config.GetDB()

	var jobs []models.Job
	if err := db.Where("owner_id = ?", c.Param("ownerId")).Find(&jobs).Error; err != nil {
		c.Error(err)
		return
	}

	counts := make(map[string]int64, len(jobs))
	for _, job := range jobs {
		var count int64
		if err := db.Model(&models.JobApplication{}).
			Where("job_id = ?", job.ID).
			Count(&count).Error; err != nil {
			c.Error(err)
			return
		}
		counts[strconv.FormatUint(uint64(job.ID), 10)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counts,
	})
}

// GetWorkerSummary handles GET /api/analytics/worker/:workerId/summary -
// returns total jobs available, the worker's applied count, and accepted
// count. totalJobs is global, so only accepted <= applied is guaranteed.
func GetWorkerSummary(c *gin.Context) {
	db := config.GetDB()
	workerID := c.Param("workerId")

	var totalJobs int64
	if err := db.Model(&models.Job{}).Count(&totalJobs).Error; err != nil {
		c.Error(err)
		return
	}

	var applied int64
	if err := db.Model(&models.JobApplication{}).
		Where("worker_id = ?", workerID).
		Count(&applied).Error; err != nil {
		c.Error(err)
		return
	}

	var accepted int64
	if err := db.Model(&models.JobApplication{}).
		Where("worker_id = ? AND status = ?", workerID, models.ApplicationStatusAccepted).
		Count(&accepted).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalJobs": totalJobs,
			"applied":   applied,
			"accepted":  accepted,
		},
	})
}
