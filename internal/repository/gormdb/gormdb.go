package gormdb

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

// Repository defines the persistence operations the tracker needs. Lookup
// methods return (nil, nil) when no row matches.
type Repository interface {
	CreateFood(ctx context.Context, food *models.Food) error
	GetFood(ctx context.Context, id uint) (*models.Food, error)
	GetFoodByName(ctx context.Context, name string) (*models.Food, error)
	ListFoods(ctx context.Context) ([]models.Food, error)

	GetDailyLog(ctx context.Context, day string) (*models.DailyLog, error)
	GetDailyLogByID(ctx context.Context, id uint) (*models.DailyLog, error)
	GetLatestDailyLogBefore(ctx context.Context, day string) (*models.DailyLog, error)
	CreateDailyLog(ctx context.Context, dailyLog *models.DailyLog) error
	SaveDailyLog(ctx context.Context, dailyLog *models.DailyLog) error
	ListDailyLogs(ctx context.Context, fromDay, toDay string) ([]models.DailyLog, error)

	CreateFoodEntry(ctx context.Context, entry *models.FoodEntry) error
	GetFoodEntry(ctx context.Context, id uint) (*models.FoodEntry, error)
	DeleteFoodEntry(ctx context.Context, id uint) error
	ListFoodEntries(ctx context.Context, dailyLogID uint) ([]models.FoodEntry, error)

	UpsertWeightEntry(ctx context.Context, entry *models.WeightEntry) error
	GetWeightEntry(ctx context.Context, day string) (*models.WeightEntry, error)
	ListWeightEntries(ctx context.Context, fromDay, toDay string) ([]models.WeightEntry, error)
}

// New opens the database selected by the configuration, migrates the schema
// and returns a ready repository. SQLite is the file-based default.
func New(cfg config.DatabaseConfig) (Repository, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "sqlite":
		// SQLite creates the .db file on connect, but only if the directory
		// already exists.
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %q: %w", dir, err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	case "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.User, cfg.Password, cfg.Addr, cfg.Port, cfg.Name)
		}
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.Addr, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := openGormDB(dialector)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Type, err)
	}

	if err := db.AutoMigrate(
		&models.Food{},
		&models.DailyLog{},
		&models.FoodEntry{},
		&models.WeightEntry{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &GormRepository{db: db}, nil
}

func openGormDB(dialector gorm.Dialector) (*gorm.DB, error) {
	gl := gormlogger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             5 * time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gl,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
