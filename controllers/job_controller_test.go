package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/middleware"
	"github.com/osi-labs/shramsaathi-api/models"
	"github.com/osi-labs/shramsaathi-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Owner{},
		&models.Job{},
		&models.JobApplication{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func registerJobRoutes(router *gin.Engine) {
	router.POST("/api/jobs", CreateJob)
	router.GET("/api/jobs", ListJobs)
	router.GET("/api/jobs/search", SearchJobs)
	router.GET("/api/jobs/owner/:ownerId", ListJobsByOwner)
	router.GET("/api/jobs/:id", GetJob)
	router.PUT("/api/jobs/:id", UpdateJob)
	router.DELETE("/api/jobs/:id", DeleteJob)
}

func performJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v (body: %s)", err, w.Body.String())
	}
	return response
}

func TestCreateJob(t *testing.T) {
	setupTestDB(t)
	services.SetGeocoder(nil)

	router := setupTestRouter()
	registerJobRoutes(router)

	tests := []struct {
		name           string
		payload        map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Create job successfully",
			payload: map[string]interface{}{
				"ownerId":     1,
				"title":       "House wiring",
				"skillNeeded": "Electrician",
				"location":    "Hyderabad",
				"pay":         800.0,
				"duration":    "2 days",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing title",
			payload: map[string]interface{}{
				"ownerId":     1,
				"skillNeeded": "Electrician",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "Unknown status rejected",
			payload: map[string]interface{}{
				"ownerId":     1,
				"title":       "Painting",
				"skillNeeded": "Painter",
				"status":      "hiring",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_STATUS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, "POST", "/api/jobs", tt.payload)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeResponse(t, w)
			if tt.expectedCode != "" {
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errObj["code"])
			} else {
				assert.Equal(t, true, response["success"])
				data := response["data"].(map[string]interface{})
				assert.Equal(t, models.JobStatusOpen, data["status"], "New jobs should default to open")
			}
		})
	}
}

func TestCreateJobResolvesCoordinates(t *testing.T) {
	db := setupTestDB(t)

	mock := services.NewMockGeocoder()
	mock.AddResult("Ameerpet, Hyderabad, Telangana, 500016", services.Coordinates{Lat: 17.4375, Lon: 78.4483})
	mock.SetAsMockForTesting()
	defer services.SetGeocoder(nil)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "POST", "/api/jobs", map[string]interface{}{
		"ownerId":     1,
		"title":       "House wiring",
		"skillNeeded": "Electrician",
		"location":    "Hyderabad",
		"area":        "Ameerpet",
		"state":       "Telangana",
		"pincode":     500016,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var job models.Job
	assert.NoError(t, db.First(&job).Error)
	assert.NotNil(t, job.Lat)
	assert.NotNil(t, job.Lon)
	// Stored coordinates must lie inside the accepted region
	assert.GreaterOrEqual(t, *job.Lat, 6.0)
	assert.LessOrEqual(t, *job.Lat, 38.0)
	assert.GreaterOrEqual(t, *job.Lon, 68.0)
	assert.LessOrEqual(t, *job.Lon, 98.0)

	assert.Equal(t, []string{"Ameerpet, Hyderabad, Telangana, 500016"}, mock.Calls())
}

func TestCreateJobSurvivesGeocodeFailure(t *testing.T) {
	db := setupTestDB(t)

	mock := services.NewMockGeocoder()
	mock.FailWith(fmt.Errorf("geocoder unreachable"))
	mock.SetAsMockForTesting()
	defer services.SetGeocoder(nil)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "POST", "/api/jobs", map[string]interface{}{
		"ownerId":     1,
		"title":       "Pipe repair",
		"skillNeeded": "Plumber",
		"location":    "Warangal",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "Geocode failure must not block the save")

	var job models.Job
	assert.NoError(t, db.First(&job).Error)
	assert.Nil(t, job.Lat, "Coordinates should be absent when the lookup fails")
	assert.Nil(t, job.Lon)
}

func TestDeleteJobNotFound(t *testing.T) {
	setupTestDB(t)
	services.SetGeocoder(nil)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "DELETE", "/api/jobs/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "Deleting a missing job is a 404, not a 500")

	response := decodeResponse(t, w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestDeleteJob(t *testing.T) {
	db := setupTestDB(t)
	services.SetGeocoder(nil)

	job := models.Job{OwnerID: 1, Title: "Tiling", SkillNeeded: "Mason", Status: models.JobStatusOpen}
	assert.NoError(t, db.Create(&job).Error)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "DELETE", fmt.Sprintf("/api/jobs/%d", job.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Job{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateJobStatusTransition(t *testing.T) {
	db := setupTestDB(t)
	services.SetGeocoder(nil)

	job := models.Job{OwnerID: 1, Title: "Wiring", SkillNeeded: "Electrician", Status: models.JobStatusFilled}
	assert.NoError(t, db.Create(&job).Error)

	router := setupTestRouter()
	registerJobRoutes(router)

	// Filled jobs cannot reopen
	w := performJSON(router, "PUT", fmt.Sprintf("/api/jobs/%d", job.ID), map[string]interface{}{
		"ownerId":     1,
		"title":       "Wiring",
		"skillNeeded": "Electrician",
		"status":      models.JobStatusOpen,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeResponse(t, w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_TRANSITION", errObj["code"])

	// Closing a filled job is fine
	w = performJSON(router, "PUT", fmt.Sprintf("/api/jobs/%d", job.ID), map[string]interface{}{
		"ownerId":     1,
		"title":       "Wiring",
		"skillNeeded": "Electrician",
		"status":      models.JobStatusClosed,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Job
	assert.NoError(t, db.First(&updated, job.ID).Error)
	assert.Equal(t, models.JobStatusClosed, updated.Status)
}

func TestUpdateJobNotFound(t *testing.T) {
	setupTestDB(t)
	services.SetGeocoder(nil)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "PUT", "/api/jobs/424242", map[string]interface{}{
		"ownerId":     1,
		"title":       "Anything",
		"skillNeeded": "Anything",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchJobsBySkill(t *testing.T) {
	db := setupTestDB(t)
	services.SetGeocoder(nil)

	jobs := []models.Job{
		{OwnerID: 1, Title: "House wiring", SkillNeeded: "Electrician", Status: models.JobStatusOpen},
		{OwnerID: 1, Title: "Fan repair", SkillNeeded: "electrician", Status: models.JobStatusOpen},
		{OwnerID: 2, Title: "Pipe repair", SkillNeeded: "Plumber", Status: models.JobStatusOpen},
	}
	for i := range jobs {
		assert.NoError(t, db.Create(&jobs[i]).Error)
	}

	router := setupTestRouter()
	registerJobRoutes(router)

	// Search is case-insensitive and matches substrings
	w := performJSON(router, "GET", "/api/jobs/search?skill=ELECTR", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	// Missing skill parameter is rejected
	w = performJSON(router, "GET", "/api/jobs/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListJobsByOwner(t *testing.T) {
	db := setupTestDB(t)
	services.SetGeocoder(nil)

	assert.NoError(t, db.Create(&models.Job{OwnerID: 1, Title: "A", SkillNeeded: "X", Status: models.JobStatusOpen}).Error)
	assert.NoError(t, db.Create(&models.Job{OwnerID: 1, Title: "B", SkillNeeded: "Y", Status: models.JobStatusOpen}).Error)
	assert.NoError(t, db.Create(&models.Job{OwnerID: 2, Title: "C", SkillNeeded: "Z", Status: models.JobStatusOpen}).Error)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "GET", "/api/jobs/owner/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestGetJob(t *testing.T) {
	db := setupTestDB(t)
	services.SetGeocoder(nil)

	job := models.Job{OwnerID: 7, Title: "Painting", SkillNeeded: "Painter", Status: models.JobStatusOpen}
	assert.NoError(t, db.Create(&job).Error)

	router := setupTestRouter()
	registerJobRoutes(router)

	w := performJSON(router, "GET", fmt.Sprintf("/api/jobs/%d", job.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Painting", data["title"])

	w = performJSON(router, "GET", "/api/jobs/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
