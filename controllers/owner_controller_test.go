package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/models"
	"github.com/stretchr/testify/assert"
)

func registerOwnerRoutes(router *gin.Engine) {
	router.POST("/api/owners", RegisterOwner)
	router.GET("/api/owners", ListOwners)
}

func TestRegisterOwner(t *testing.T) {
	db := setupTestDB(t)

	router := setupTestRouter()
	registerOwnerRoutes(router)

	w := performJSON(router, "POST", "/api/owners", map[string]interface{}{
		"name":         "Suresh",
		"phone":        "9876500000",
		"address":      "Main road",
		"businessName": "Suresh Constructions",
		"district":     "Hyderabad",
		"mandal":       "Kukatpally",
		"pincode":      500072,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Suresh Constructions", data["businessName"])
	assert.NotContains(t, data, "password")

	// Default password applied when none is supplied
	var owner models.Owner
	assert.NoError(t, db.Where("name = ?", "Suresh").First(&owner).Error)
	assert.Equal(t, "owner123", owner.Password)
}

func TestRegisterOwnerValidation(t *testing.T) {
	setupTestDB(t)

	router := setupTestRouter()
	registerOwnerRoutes(router)

	w := performJSON(router, "POST", "/api/owners", map[string]interface{}{
		"name": "No Phone",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOwners(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"A", "B", "C"} {
		assert.NoError(t, db.Create(&models.Owner{
			Name: name, Phone: "9", Address: "a", Password: "owner123", Registered: true,
		}).Error)
	}

	router := setupTestRouter()
	registerOwnerRoutes(router)

	w := performJSON(router, "GET", "/api/owners", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 3)
}
