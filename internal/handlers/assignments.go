package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/db"
	"github.com/piciu1221/firesignal/internal/cache"
	"github.com/piciu1221/firesignal/internal/models"
	"gorm.io/gorm"
)

type AlarmActionRequest struct {
	AlarmID       uint `json:"alarm_id" binding:"required"`
	FirefighterID uint `json:"firefighter_id" binding:"required"`
}

type ConsolidatedAlarmInfoRequest struct {
	AlarmID             uint   `json:"alarm_id" binding:"required"`
	FirefighterUsername string `json:"firefighter_username" binding:"required"`
}

type ConsolidatedAlarmInfoResponse struct {
	Count                      int64 `json:"count"`
	HasAcceptedCommander       bool  `json:"has_accepted_commander"`
	AcceptedDriversCount       int64 `json:"accepted_drivers_count"`
	AcceptedFirefightersCount  int64 `json:"accepted_firefighters_count"`
	HasAcceptedTechnicalRescue bool  `json:"has_accepted_technical_rescue"`
}

// consolidatedTTL keeps the per-alarm summary fresh enough for the polling
// frontend while shielding the count queries from it.
const consolidatedTTL = 5 * time.Second

// AssignmentHandler serves accept/decline actions and the consolidated
// response summary for an alarm.
type AssignmentHandler struct {
	Cache *cache.Cache
}

// AcceptAlarm marks the caller's assignment as accepted.
func (h *AssignmentHandler) AcceptAlarm(ctx *gin.Context) {
	h.setAcceptance(ctx, true)
}

// DeclineAlarm marks the caller's assignment as declined.
func (h *AssignmentHandler) DeclineAlarm(ctx *gin.Context) {
	h.setAcceptance(ctx, false)
}

// setAcceptance updates an existing assignment row. A firefighter who was
// never targeted by the alarm gets a 404 instead of a silently inserted row.
func (h *AssignmentHandler) setAcceptance(ctx *gin.Context, accepted bool) {
	var body AlarmActionRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := db.DB.
		Model(&models.AlarmedFirefighter{}).
		Where("alarm_id = ? AND firefighter_id = ?", body.AlarmID, body.FirefighterID).
		Update("accepted", accepted)

	if result.Error != nil {
		log.Printf("Failed to update assignment %d/%d: %v", body.AlarmID, body.FirefighterID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	ctx.Status(http.StatusOK)
}

// ConsolidatedAlarmInfo returns the response status of the caller's
// department for one alarm: how many of its firefighters were alerted, how
// many accepted, and whether the accepted set covers a commander, drivers and
// technical rescue.
func (h *AssignmentHandler) ConsolidatedAlarmInfo(ctx *gin.Context) {
	var body ConsolidatedAlarmInfoRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := fmt.Sprintf("consolidated:%d:%s", body.AlarmID, body.FirefighterUsername)

	if cached := h.Cache.Get(ctx.Request.Context(), key); cached != nil {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	var firefighter models.Firefighter

	err := db.DB.Where("username = ?", body.FirefighterUsername).First(&firefighter).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Firefighter not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve firefighter"})
		}
		return
	}

	info, err := consolidatedInfo(body.AlarmID, firefighter.DepartmentID)

	if err != nil {
		log.Printf("Failed to consolidate alarm %d info: %v", body.AlarmID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alarm info"})
		return
	}

	if payload, err := json.Marshal(info); err == nil {
		h.Cache.Set(ctx.Request.Context(), key, payload, consolidatedTTL)
	}

	ctx.JSON(http.StatusOK, info)
}

func consolidatedInfo(alarmID uint, departmentID uint) (*ConsolidatedAlarmInfoResponse, error) {
	base := func() *gorm.DB {
		return db.DB.
			Model(&models.AlarmedFirefighter{}).
			Joins("JOIN firefighters ON firefighters.id = alarmed_firefighters.firefighter_id").
			Where("firefighters.department_id = ? AND alarmed_firefighters.alarm_id = ?", departmentID, alarmID)
	}

	var info ConsolidatedAlarmInfoResponse

	if err := base().Count(&info.Count).Error; err != nil {
		return nil, err
	}

	if err := base().Where("alarmed_firefighters.accepted = ?", true).
		Count(&info.AcceptedFirefightersCount).Error; err != nil {
		return nil, err
	}

	if err := base().Where("alarmed_firefighters.accepted = ? AND firefighters.driver = ?", true, true).
		Count(&info.AcceptedDriversCount).Error; err != nil {
		return nil, err
	}

	var commanders int64
	if err := base().Where("alarmed_firefighters.accepted = ? AND firefighters.commander = ?", true, true).
		Count(&commanders).Error; err != nil {
		return nil, err
	}
	info.HasAcceptedCommander = commanders > 0

	var technical int64
	if err := base().Where("alarmed_firefighters.accepted = ? AND firefighters.technical_rescue = ?", true, true).
		Count(&technical).Error; err != nil {
		return nil, err
	}
	info.HasAcceptedTechnicalRescue = technical > 0

	return &info, nil
}
