package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/internal/repository/gormdb"
)

// Sentinel errors the HTTP layer maps to statuses.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateFood = errors.New("food already exists")
	ErrFoodNotFound  = errors.New("food not found")
	ErrEntryNotFound = errors.New("food entry not found")
)

// Service describes the tracker operations the HTTP layer can perform.
type Service interface {
	CreateFood(ctx context.Context, name string, caloriesPer100g, proteinPer100g float64) (*models.Food, error)
	ListFoods(ctx context.Context) ([]models.Food, error)
	LogFood(ctx context.Context, day string, foodID uint, quantityGrams float64) (*models.FoodEntry, *models.DailyLog, error)
	RemoveEntry(ctx context.Context, entryID uint) (*models.DailyLog, error)
	LogWeight(ctx context.Context, day string, weightKg float64) (*models.WeightEntry, error)
	SetProteinTarget(ctx context.Context, day string, target float64) (*models.DailyLog, error)
	Dashboard(ctx context.Context, day string) (*Dashboard, error)
	GetTrend(ctx context.Context, days int) (*models.Trend, error)
}

// Dashboard is the read model for the main page: the day's log, its entries,
// the day's weight if recorded, and the food catalog for the logging form.
type Dashboard struct {
	Day     string              `json:"day"`
	Log     *models.DailyLog    `json:"log"`
	Entries []models.FoodEntry  `json:"entries"`
	Weight  *models.WeightEntry `json:"weight,omitempty"`
	Foods   []models.Food       `json:"foods"`
}

// NutritionService is the production implementation backed by the relational
// repository.
type NutritionService struct {
	repo          gormdb.Repository
	defaultTarget float64
	location      *time.Location
	logger        *zap.Logger
}

// NewService wires a new tracker service instance.
func NewService(repo gormdb.Repository, defaultProteinTarget float64, location *time.Location, logger *zap.Logger) *NutritionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &NutritionService{
		repo:          repo,
		defaultTarget: defaultProteinTarget,
		location:      location,
		logger:        logger,
	}
}

// CreateFood registers a new reference food.
func (s *NutritionService) CreateFood(ctx context.Context, name string, caloriesPer100g, proteinPer100g float64) (*models.Food, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if caloriesPer100g <= 0 || proteinPer100g <= 0 {
		return nil, fmt.Errorf("%w: calories and protein per 100g must be positive", ErrInvalidInput)
	}

	existing, err := s.repo.GetFoodByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateFood, name)
	}

	food := &models.Food{
		Name:            name,
		CaloriesPer100g: caloriesPer100g,
		ProteinPer100g:  proteinPer100g,
	}
	if err := s.repo.CreateFood(ctx, food); err != nil {
		return nil, err
	}

	s.logger.Info("food created", zap.String("name", name), zap.Uint("id", food.ID))
	return food, nil
}

// ListFoods returns the whole food catalog.
func (s *NutritionService) ListFoods(ctx context.Context) ([]models.Food, error) {
	return s.repo.ListFoods(ctx)
}

// LogFood records a consumption event and recomputes the day's totals.
func (s *NutritionService) LogFood(ctx context.Context, day string, foodID uint, quantityGrams float64) (*models.FoodEntry, *models.DailyLog, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, nil, err
	}
	if quantityGrams <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity_grams must be positive", ErrInvalidInput)
	}

	food, err := s.repo.GetFood(ctx, foodID)
	if err != nil {
		return nil, nil, err
	}
	if food == nil {
		return nil, nil, fmt.Errorf("%w: id %d", ErrFoodNotFound, foodID)
	}

	dailyLog, err := s.ensureDailyLog(ctx, day)
	if err != nil {
		return nil, nil, err
	}

	calories, protein := food.Contribution(quantityGrams)
	entry := &models.FoodEntry{
		DailyLogID:    dailyLog.ID,
		FoodID:        food.ID,
		QuantityGrams: quantityGrams,
		Calories:      calories,
		Protein:       protein,
	}
	if err := s.repo.CreateFoodEntry(ctx, entry); err != nil {
		return nil, nil, err
	}

	dailyLog, err = s.recomputeTotals(ctx, dailyLog)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("food logged",
		zap.String("day", day),
		zap.String("food", food.Name),
		zap.Float64("grams", quantityGrams),
		zap.Float64("calories", calories),
		zap.Float64("protein", protein))

	entry.Food = food
	return entry, dailyLog, nil
}

// RemoveEntry deletes a logged consumption event and recomputes the affected
// day's totals.
func (s *NutritionService) RemoveEntry(ctx context.Context, entryID uint) (*models.DailyLog, error) {
	entry, err := s.repo.GetFoodEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: id %d", ErrEntryNotFound, entryID)
	}

	if err := s.repo.DeleteFoodEntry(ctx, entryID); err != nil {
		return nil, err
	}

	dailyLog, err := s.repo.GetDailyLogByID(ctx, entry.DailyLogID)
	if err != nil {
		return nil, err
	}
	if dailyLog == nil {
		// Entry deleted but its log is gone; nothing left to recompute.
		return nil, nil
	}

	updated, err := s.recomputeTotals(ctx, dailyLog)
	if err != nil {
		return nil, err
	}

	s.logger.Info("food entry removed", zap.Uint("entry_id", entryID), zap.String("day", updated.Day))
	return updated, nil
}

// LogWeight upserts the body-weight measurement for a day.
func (s *NutritionService) LogWeight(ctx context.Context, day string, weightKg float64) (*models.WeightEntry, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	if weightKg <= 0 {
		return nil, fmt.Errorf("%w: weight_kg must be positive", ErrInvalidInput)
	}

	entry := &models.WeightEntry{Day: day, WeightKg: weightKg}
	if err := s.repo.UpsertWeightEntry(ctx, entry); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetWeightEntry(ctx, day)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = entry
	}

	s.logger.Info("weight logged", zap.String("day", day), zap.Float64("weight_kg", weightKg))
	return stored, nil
}

// SetProteinTarget updates (or creates) the daily log's protein target.
func (s *NutritionService) SetProteinTarget(ctx context.Context, day string, target float64) (*models.DailyLog, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	if target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", ErrInvalidInput)
	}

	dailyLog, err := s.ensureDailyLog(ctx, day)
	if err != nil {
		return nil, err
	}

	dailyLog.ProteinTarget = target
	if err := s.repo.SaveDailyLog(ctx, dailyLog); err != nil {
		return nil, err
	}

	s.logger.Info("protein target updated", zap.String("day", day), zap.Float64("target", target))
	return dailyLog, nil
}

// Dashboard assembles the main view for a day, creating the day's log on
// first access the way the original dashboard does.
func (s *NutritionService) Dashboard(ctx context.Context, day string) (*Dashboard, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	dailyLog, err := s.ensureDailyLog(ctx, day)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListFoodEntries(ctx, dailyLog.ID)
	if err != nil {
		return nil, err
	}

	weight, err := s.repo.GetWeightEntry(ctx, day)
	if err != nil {
		return nil, err
	}

	foods, err := s.repo.ListFoods(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Day:     day,
		Log:     dailyLog,
		Entries: entries,
		Weight:  weight,
		Foods:   foods,
	}, nil
}

// GetTrend returns the most recent daily logs and weight entries, ascending
// by day, for chart rendering.
func (s *NutritionService) GetTrend(ctx context.Context, days int) (*models.Trend, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	today := time.Now().In(s.location)
	from := today.AddDate(0, 0, -(days - 1)).Format(models.DayLayout)
	to := today.Format(models.DayLayout)

	logs, err := s.repo.ListDailyLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	weights, err := s.repo.ListWeightEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &models.Trend{Days: days, Logs: logs, Weights: weights}, nil
}

// ensureDailyLog fetches the day's log, creating it with an inherited protein
// target when absent: the most recent prior day's target, or the configured
// default if there is no history.
func (s *NutritionService) ensureDailyLog(ctx context.Context, day string) (*models.DailyLog, error) {
	dailyLog, err := s.repo.GetDailyLog(ctx, day)
	if err != nil {
		return nil, err
	}
	if dailyLog != nil {
		return dailyLog, nil
	}

	target := s.defaultTarget
	if prior, err := s.repo.GetLatestDailyLogBefore(ctx, day); err != nil {
		return nil, err
	} else if prior != nil && prior.ProteinTarget > 0 {
		target = prior.ProteinTarget
	}

	dailyLog = &models.DailyLog{Day: day, ProteinTarget: target}
	if err := s.repo.CreateDailyLog(ctx, dailyLog); err != nil {
		return nil, err
	}
	return dailyLog, nil
}

// recomputeTotals rebuilds the log's totals from its entries. A full
// recompute keeps the totals drift-free regardless of adds and removes.
func (s *NutritionService) recomputeTotals(ctx context.Context, dailyLog *models.DailyLog) (*models.DailyLog, error) {
	entries, err := s.repo.ListFoodEntries(ctx, dailyLog.ID)
	if err != nil {
		return nil, err
	}

	var calories, protein float64
	for _, entry := range entries {
		calories += entry.Calories
		protein += entry.Protein
	}

	dailyLog.TotalCalories = calories
	dailyLog.TotalProtein = protein
	if err := s.repo.SaveDailyLog(ctx, dailyLog); err != nil {
		return nil, err
	}
	return dailyLog, nil
}

func (s *NutritionService) resolveDay(day string) (string, error) {
	if strings.TrimSpace(day) == "" {
		return models.Today(s.location), nil
	}
	normalized, err := models.ParseDay(day)
	if err != nil {
		return "", fmt.Errorf("%w: day must be formatted %s", ErrInvalidInput, models.DayLayout)
	}
	return normalized, nil
}
