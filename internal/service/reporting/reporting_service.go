package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/internal/repository/gormdb"
	"github.com/akhilreddydanda/noobie/internal/repository/sheets"
)

const (
	nutritionRange = "Nutrition!A:E"
	weightRange    = "Weight!A:B"
)

// Service exports weekly nutrition summaries to a spreadsheet. Scheduled only
// when Sheets credentials are configured.
type Service struct {
	repo   gormdb.Repository
	sheets sheets.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repo gormdb.Repository, sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sheets: sheetsRepo, logger: logger}
}

// ExportWeek appends the last 7 days of daily logs and weight entries ending
// at the reference time, and returns a short text summary.
func (s *Service) ExportWeek(ctx context.Context, reference time.Time) (string, error) {
	to := reference.Format(models.DayLayout)
	from := reference.AddDate(0, 0, -6).Format(models.DayLayout)

	logs, err := s.repo.ListDailyLogs(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("load daily logs: %w", err)
	}
	weights, err := s.repo.ListWeightEntries(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("load weight entries: %w", err)
	}

	if len(logs) == 0 && len(weights) == 0 {
		return fmt.Sprintf("Nutrition week (%s-%s): no records yet.", from, to), nil
	}

	nutritionRows := make([][]interface{}, 0, len(logs))
	var totalCalories, totalProtein, totalTarget float64
	for _, dailyLog := range logs {
		nutritionRows = append(nutritionRows, []interface{}{
			dailyLog.Day,
			dailyLog.TotalCalories,
			dailyLog.TotalProtein,
			dailyLog.ProteinTarget,
			dailyLog.TotalProtein >= dailyLog.ProteinTarget,
		})
		totalCalories += dailyLog.TotalCalories
		totalProtein += dailyLog.TotalProtein
		totalTarget += dailyLog.ProteinTarget
	}

	weightRows := make([][]interface{}, 0, len(weights))
	for _, entry := range weights {
		weightRows = append(weightRows, []interface{}{entry.Day, entry.WeightKg})
	}

	if err := s.sheets.AppendRows(ctx, nutritionRange, nutritionRows); err != nil {
		return "", fmt.Errorf("export nutrition rows: %w", err)
	}
	if err := s.sheets.AppendRows(ctx, weightRange, weightRows); err != nil {
		return "", fmt.Errorf("export weight rows: %w", err)
	}

	summary := s.buildSummary(from, to, logs, weights, totalCalories, totalProtein, totalTarget)
	s.logger.Info("weekly nutrition export completed",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("log_rows", len(nutritionRows)),
		zap.Int("weight_rows", len(weightRows)))

	return summary, nil
}

func (s *Service) buildSummary(from, to string, logs []models.DailyLog, weights []models.WeightEntry, totalCalories, totalProtein, totalTarget float64) string {
	if len(logs) == 0 {
		return fmt.Sprintf("Nutrition week (%s-%s): %d weight entries, no daily logs.", from, to, len(weights))
	}

	days := float64(len(logs))
	summary := fmt.Sprintf("Nutrition week (%s-%s): avg %.0f kcal, avg %.1f g protein against avg target %.1f g across %d days.",
		from, to, totalCalories/days, totalProtein/days, totalTarget/days, len(logs))

	if len(weights) > 0 {
		latest := weights[len(weights)-1]
		summary += fmt.Sprintf(" Latest weight %.1f kg (%s).", latest.WeightKg, latest.Day)
	}
	return summary
}
