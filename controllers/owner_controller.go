package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
)

const defaultOwnerPassword = "owner123"

// RegisterOwnerRequest represents the request body for registering an owner
type RegisterOwnerRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	BusinessName string `json:"businessName"`
	District     string `json:"district"`
	Mandal       string `json:"mandal"`
	Pincode      int    `json:"pincode"`
	Password     string `json:"password"`
}

// RegisterOwner handles POST /api/owners - registers a new job poster
func RegisterOwner(c *gin.Context) {
	var req RegisterOwnerRequest
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
		password = defaultOwnerPassword
	}

	owner := models.Owner{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		BusinessName: req.BusinessName,
		District:     req.District,
		Mandal:       req.Mandal,
		Pincode:      req.Pincode,
		Password:     password,
		Registered:   true,
	}

	db := config.GetDB()
	if err := db.Create(&owner).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    owner,
	})
}

// ListOwners handles GET /api/owners - lists all registered owners
func ListOwners(c *gin.Context) {
	db := config.GetDB()

	var owners []models.Owner
	if err := db.Find(&owners).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    owners,
	})
}
