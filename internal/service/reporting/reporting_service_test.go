package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/internal/repository/gormdb"
)

// trackerRepoStub embeds the interface so only the methods the export touches
// need implementations.
type trackerRepoStub struct {
	gormdb.Repository
	logs    []models.DailyLog
	weights []models.WeightEntry
}

func (s *trackerRepoStub) ListDailyLogs(_ context.Context, _, _ string) ([]models.DailyLog, error) {
	return s.logs, nil
}

func (s *trackerRepoStub) ListWeightEntries(_ context.Context, _, _ string) ([]models.WeightEntry, error) {
	return s.weights, nil
}

type sheetsStub struct {
	appended map[string][][]interface{}
}

func (s *sheetsStub) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	if s.appended == nil {
		s.appended = make(map[string][][]interface{})
	}
	s.appended[sheetRange] = append(s.appended[sheetRange], rows...)
	return nil
}

func TestExportWeekAppendsRowsAndSummarizes(t *testing.T) {
	repo := &trackerRepoStub{
		logs: []models.DailyLog{
			{Day: "2026-08-23", TotalCalories: 2100, TotalProtein: 140, ProteinTarget: 150},
			{Day: "2026-08-24", TotalCalories: 2300, TotalProtein: 160, ProteinTarget: 150},
		},
		weights: []models.WeightEntry{
			{Day: "2026-08-24", WeightKg: 82.5},
		},
	}
	sheets := &sheetsStub{}
	svc := NewService(repo, sheets, nil)

	summary, err := svc.ExportWeek(context.Background(), time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, sheets.appended[nutritionRange], 2)
	require.Len(t, sheets.appended[weightRange], 1)

	firstRow := sheets.appended[nutritionRange][0]
	assert.Equal(t, "2026-08-23", firstRow[0])
	assert.Equal(t, false, firstRow[4], "target not met on the 23rd")
	secondRow := sheets.appended[nutritionRange][1]
	assert.Equal(t, true, secondRow[4], "target met on the 24th")

	assert.Contains(t, summary, "avg 2200 kcal")
	assert.Contains(t, summary, "avg 150.0 g protein")
	assert.Contains(t, summary, "Latest weight 82.5 kg (2026-08-24)")
}

func TestExportWeekWithNoRecords(t *testing.T) {
	svc := NewService(&trackerRepoStub{}, &sheetsStub{}, nil)

	summary, err := svc.ExportWeek(context.Background(), time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, summary, "no records yet")
}
