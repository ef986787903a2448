package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/db"
	"github.com/piciu1221/firesignal/internal/dispatch"
	"github.com/piciu1221/firesignal/internal/models"
	"github.com/piciu1221/firesignal/internal/types"
)

type DispatchAlarmRequest struct {
	City          string `json:"city" binding:"required"`
	Street        string `json:"street" binding:"required"`
	Description   string `json:"description" binding:"required"`
	DepartmentIDs []uint `json:"selected_departments" binding:"required,min=1"`
}

type AlarmWithDepartments struct {
	Alarm       models.Alarm            `json:"alarm"`
	Departments []models.FireDepartment `json:"departments"`
}

// AlarmHandler serves alarm creation and listing. The dispatcher is injected
// from the composition root so it shares the process-wide notifier registry
// with the subscription handlers.
type AlarmHandler struct {
	Dispatcher *dispatch.Dispatcher
}

// Dispatch creates an alarm, assigns every firefighter of the selected
// departments and pushes the alarm to their open sessions.
func (h *AlarmHandler) Dispatch(ctx *gin.Context) {
	var body DispatchAlarmRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.Dispatcher.Dispatch(ctx.Request.Context(), dispatch.AlarmInput{
		City:          body.City,
		Street:        body.Street,
		Description:   body.Description,
		DepartmentIDs: body.DepartmentIDs,
	})

	if err != nil {
		log.Printf("Failed to dispatch alarm: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch alarm"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"alarm":    result.Alarm,
		"targeted": result.Targeted,
		"notified": result.Notified,
	})
}

// ListAlarms returns one page of the latest alarms, each with the departments
// that were alerted.
func ListAlarms(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))

	if err != nil || page < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}

	var alarms []models.Alarm

	err = db.DB.
		Order("id DESC").
		Limit(types.PageSize).
		Offset(page * types.PageSize).
		Find(&alarms).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alarms"})
		return
	}

	response := make([]AlarmWithDepartments, 0, len(alarms))

	for _, alarm := range alarms {
		var departments []models.FireDepartment

		err := db.DB.
			Distinct("fire_departments.*").
			Joins("JOIN firefighters ON firefighters.department_id = fire_departments.id").
			Joins("JOIN alarmed_firefighters ON alarmed_firefighters.firefighter_id = firefighters.id").
			Where("alarmed_firefighters.alarm_id = ?", alarm.ID).
			Find(&departments).Error

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerted departments"})
			return
		}

		response = append(response, AlarmWithDepartments{Alarm: alarm, Departments: departments})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListAlarmsForFirefighter returns the alarms a firefighter was assigned to,
// newest first.
func ListAlarmsForFirefighter(ctx *gin.Context) {
	username := ctx.Param("username")

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))

	if err != nil || page < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}

	size, err := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(types.PageSize)))

	if err != nil || size < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
		return
	}

	var alarms []models.Alarm

	err = db.DB.
		Joins("JOIN alarmed_firefighters ON alarmed_firefighters.alarm_id = alarms.id").
		Joins("JOIN firefighters ON firefighters.id = alarmed_firefighters.firefighter_id").
		Where("firefighters.username = ?", username).
		Order("alarms.created_at DESC").
		Limit(size).
		Offset(page * size).
		Find(&alarms).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alarms"})
		return
	}

	ctx.JSON(http.StatusOK, alarms)
}
