package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
)

// Password assigned at registration when the request carries none. Kept from
// the original system; there is no authentication layer on top of it.
const defaultWorkerPassword = "worker123"

// RegisterUserRequest represents the request body for registering a worker
type RegisterUserRequest struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Address         string `json:"address" binding:"required"`
	WorkType        string `json:"workType" binding:"required"`
	District        string `json:"district" binding:"required"`
	Mandal          string `json:"mandal" binding:"required"`
	Pincode         int    `json:"pincode" binding:"required"`
	Area            string `json:"area"`
	Colony          string `json:"colony"`
	State           string `json:"state"`
	Age             *int   `json:"age"`
	ExperienceYears *int   `json:"experienceYears"`
	Password        string `json:"password"`
}

// RegisterUser handles POST /api/users - registers a new worker
func RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
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

	password := req.Password
	if password == "" {
		password = defaultWorkerPassword
	}

	user := models.User{
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		WorkType:        req.WorkType,
		District:        req.District,
		Mandal:          req.Mandal,
		Pincode:         req.Pincode,
		Area:            req.Area,
		Colony:          req.Colony,
		State:           req.State,
		Age:             req.Age,
		ExperienceYears: req.ExperienceYears,
		Password:        password,
		Registered:      true,
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// ListUsers handles GET /api/users - lists all registered workers
func ListUsers(c *gin.Context) {
	db := config.GetDB()

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// GetUser handles GET /api/users/:id - fetches a single worker
func GetUser(c *gin.Context) {
	db := config.GetDB()

	var user models.User
	if err := db.First(&user, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
