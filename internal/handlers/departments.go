package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/db"
	"github.com/piciu1221/firesignal/internal/models"
	"github.com/piciu1221/firesignal/internal/types"
	"gorm.io/gorm"
)

type CreateDepartmentRequest struct {
	Name      string  `json:"name" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Street    string  `json:"street" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ListDepartments returns one page of departments, newest first.
func ListDepartments(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))

	if err != nil || page < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}

	var departments []models.FireDepartment

	err = db.DB.
		Order("id DESC").
		Limit(types.PageSize).
		Offset(page * types.PageSize).
		Find(&departments).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fire departments"})
		return
	}

	ctx.JSON(http.StatusOK, departments)
}

// ListAllDepartments returns every department, for the dispatch form's
// department picker.
func ListAllDepartments(ctx *gin.Context) {
	var departments []models.FireDepartment

	if err := db.DB.Find(&departments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fire departments"})
		return
	}

	ctx.JSON(http.StatusOK, departments)
}

func CreateDepartment(ctx *gin.Context) {
	var body CreateDepartmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	department := models.FireDepartment{
		Name:      body.Name,
		City:      body.City,
		Street:    body.Street,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	}

	if err := db.DB.Create(&department).Error; err != nil {
		if isUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Department name already exists"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fire department"})
		return
	}

	ctx.JSON(http.StatusCreated, department)
}

func DeleteDepartment(ctx *gin.Context) {
	var department models.FireDepartment
	departmentID := ctx.Param("id")

	if err := db.DB.Where("id = ?", departmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Fire department not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fire department"})
		}
		return
	}

	if err := db.DB.Delete(&department).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fire department"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
