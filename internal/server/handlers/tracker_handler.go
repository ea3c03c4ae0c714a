package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/service/tracker"
)

// TrackerHandler exposes the nutrition tracker over HTTP. Bodies bind from
// either form submissions or JSON.
type TrackerHandler struct {
	svc    tracker.Service
	logger *zap.Logger
}

// NewTrackerHandler constructs the HTTP handler adapter.
func NewTrackerHandler(svc tracker.Service, logger *zap.Logger) *TrackerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackerHandler{svc: svc, logger: logger}
}

// Dashboard returns the day's log, entries, weight and the food catalog.
func (h *TrackerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context(), c.Query("day"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ListFoods returns the food catalog.
func (h *TrackerHandler) ListFoods(c *gin.Context) {
	foods, err := h.svc.ListFoods(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

type createFoodRequest struct {
	Name            string  `form:"name" json:"name"`
	CaloriesPer100g float64 `form:"calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64 `form:"protein_per_100g" json:"protein_per_100g"`
}

// CreateFood registers a new reference food.
func (h *TrackerHandler) CreateFood(c *gin.Context) {
	var req createFoodRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid create food payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	food, err := h.svc.CreateFood(c.Request.Context(), req.Name, req.CaloriesPer100g, req.ProteinPer100g)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

type logFoodRequest struct {
	Day           string  `form:"day" json:"day"`
	FoodID        uint    `form:"food_id" json:"food_id"`
	QuantityGrams float64 `form:"quantity_grams" json:"quantity_grams"`
}

// LogFood records a consumption event and returns the entry plus the
// recomputed daily log.
func (h *TrackerHandler) LogFood(c *gin.Context) {
	var req logFoodRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid log food payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, dailyLog, err := h.svc.LogFood(c.Request.Context(), req.Day, req.FoodID, req.QuantityGrams)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry, "log": dailyLog})
}

// RemoveEntry deletes a logged consumption event.
func (h *TrackerHandler) RemoveEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	dailyLog, err := h.svc.RemoveEntry(c.Request.Context(), uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": dailyLog})
}

type logWeightRequest struct {
	Day      string  `form:"day" json:"day"`
	WeightKg float64 `form:"weight_kg" json:"weight_kg"`
}

// LogWeight upserts the day's body-weight measurement.
func (h *TrackerHandler) LogWeight(c *gin.Context) {
	var req logWeightRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid log weight payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.LogWeight(c.Request.Context(), req.Day, req.WeightKg)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type setTargetRequest struct {
	Day    string  `form:"day" json:"day"`
	Target float64 `form:"target" json:"target"`
}

// SetProteinTarget updates the day's protein target.
func (h *TrackerHandler) SetProteinTarget(c *gin.Context) {
	var req setTargetRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid set target payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dailyLog, err := h.svc.SetProteinTarget(c.Request.Context(), req.Day, req.Target)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyLog)
}

// Trend returns the recent daily logs and weight entries for chart rendering.
func (h *TrackerHandler) Trend(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	trend, err := h.svc.GetTrend(c.Request.Context(), days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *TrackerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrFoodNotFound), errors.Is(err, tracker.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrDuplicateFood):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("tracker request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
