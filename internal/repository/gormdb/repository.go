package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

// GormRepository implements Repository on top of a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps an existing gorm handle, mainly for tests.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateFood(ctx context.Context, food *models.Food) error {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	return nil
}

func (r *GormRepository) GetFood(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	err := r.db.WithContext(ctx).First(&food, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food %d: %w", id, err)
	}
	return &food, nil
}

func (r *GormRepository) GetFoodByName(ctx context.Context, name string) (*models.Food, error) {
	var food models.Food
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food by name %q: %w", name, err)
	}
	return &food, nil
}

func (r *GormRepository) ListFoods(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (r *GormRepository) GetDailyLog(ctx context.Context, day string) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := r.db.WithContext(ctx).Where("day = ?", day).First(&dailyLog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily log %s: %w", day, err)
	}
	return &dailyLog, nil
}

func (r *GormRepository) GetDailyLogByID(ctx context.Context, id uint) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := r.db.WithContext(ctx).First(&dailyLog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily log %d: %w", id, err)
	}
	return &dailyLog, nil
}

func (r *GormRepository) GetLatestDailyLogBefore(ctx context.Context, day string) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := r.db.WithContext(ctx).Where("day < ?", day).Order("day DESC").First(&dailyLog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest daily log before %s: %w", day, err)
	}
	return &dailyLog, nil
}

func (r *GormRepository) CreateDailyLog(ctx context.Context, dailyLog *models.DailyLog) error {
	if err := r.db.WithContext(ctx).Create(dailyLog).Error; err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

func (r *GormRepository) SaveDailyLog(ctx context.Context, dailyLog *models.DailyLog) error {
	if err := r.db.WithContext(ctx).Save(dailyLog).Error; err != nil {
		return fmt.Errorf("save daily log: %w", err)
	}
	return nil
}

func (r *GormRepository) ListDailyLogs(ctx context.Context, fromDay, toDay string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := r.db.WithContext(ctx).
		Where("day >= ? AND day <= ?", fromDay, toDay).
		Order("day ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list daily logs %s..%s: %w", fromDay, toDay, err)
	}
	return logs, nil
}

func (r *GormRepository) CreateFoodEntry(ctx context.Context, entry *models.FoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create food entry: %w", err)
	}
	return nil
}

func (r *GormRepository) GetFoodEntry(ctx context.Context, id uint) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food entry %d: %w", id, err)
	}
	return &entry, nil
}

func (r *GormRepository) DeleteFoodEntry(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FoodEntry{}, id).Error; err != nil {
		return fmt.Errorf("delete food entry %d: %w", id, err)
	}
	return nil
}

func (r *GormRepository) ListFoodEntries(ctx context.Context, dailyLogID uint) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := r.db.WithContext(ctx).
		Preload("Food").
		Where("daily_log_id = ?", dailyLogID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list food entries for log %d: %w", dailyLogID, err)
	}
	return entries, nil
}

func (r *GormRepository) UpsertWeightEntry(ctx context.Context, entry *models.WeightEntry) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight_kg"}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("upsert weight entry %s: %w", entry.Day, err)
	}
	return nil
}

func (r *GormRepository) GetWeightEntry(ctx context.Context, day string) (*models.WeightEntry, error) {
	var entry models.WeightEntry
	err := r.db.WithContext(ctx).Where("day = ?", day).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weight entry %s: %w", day, err)
	}
	return &entry, nil
}

func (r *GormRepository) ListWeightEntries(ctx context.Context, fromDay, toDay string) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := r.db.WithContext(ctx).
		Where("day >= ? AND day <= ?", fromDay, toDay).
		Order("day ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list weight entries %s..%s: %w", fromDay, toDay, err)
	}
	return entries, nil
}
