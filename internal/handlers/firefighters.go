package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/db"
	"github.com/piciu1221/firesignal/internal/models"
	"gorm.io/gorm"
)

type CreateFirefighterRequest struct {
	DepartmentID    uint   `json:"department_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Commander       bool   `json:"commander"`
	Driver          bool   `json:"driver"`
	TechnicalRescue bool   `json:"technical_rescue"`
}

// ListFirefighters returns firefighters, optionally restricted to one
// department via ?department_id=.
func ListFirefighters(ctx *gin.Context) {
	query := db.DB

	if departmentID := ctx.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var firefighters []models.Firefighter

	if err := query.Find(&firefighters).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve firefighters"})
		return
	}

	ctx.JSON(http.StatusOK, firefighters)
}

func CreateFirefighter(ctx *gin.Context) {
	var body CreateFirefighterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var department models.FireDepartment

	if err := db.DB.Where("id = ?", body.DepartmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Fire department not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fire department"})
		}
		return
	}

	firefighter := models.Firefighter{
		DepartmentID:    body.DepartmentID,
		Name:            body.Name,
		Username:        body.Username,
		Commander:       body.Commander,
		Driver:          body.Driver,
		TechnicalRescue: body.TechnicalRescue,
	}

	if err := db.DB.Create(&firefighter).Error; err != nil {
		if isUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Firefighter username already exists"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create firefighter"})
		return
	}

	ctx.JSON(http.StatusCreated, firefighter)
}

func DeleteFirefighter(ctx *gin.Context) {
	var firefighter models.Firefighter
	firefighterID := ctx.Param("id")

	if err := db.DB.Where("id = ?", firefighterID).First(&firefighter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Firefighter not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve firefighter"})
		}
		return
	}

	if err := db.DB.Delete(&firefighter).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete firefighter"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetFirefighterName resolves a username to the firefighter's display name,
// used by the frontend header after login.
func GetFirefighterName(ctx *gin.Context) {
	username := ctx.Param("username")

	var firefighter models.Firefighter

	if err := db.DB.Where("username = ?", username).First(&firefighter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Firefighter not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve firefighter"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"name": firefighter.Name})
}
