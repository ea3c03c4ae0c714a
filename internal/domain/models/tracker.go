package models

import "time"

// DayLayout is the calendar-date key format used across the tracker. Daily
// logs and weight entries are keyed by day, never by timestamp.
const DayLayout = "2006-01-02"

// Today returns the current day key in the given location.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format(DayLayout)
}

// ParseDay validates a day key and returns it normalized.
func ParseDay(value string) (string, error) {
	t, err := time.Parse(DayLayout, value)
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}

// Food is immutable reference data describing macros per 100 grams.
type Food struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"uniqueIndex;not null" json:"name"`
	CaloriesPer100g float64   `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64   `gorm:"not null" json:"protein_per_100g"`
	CreatedAt       time.Time `json:"created_at"`
}

// Contribution computes the calorie and protein share of a quantity in grams.
func (f Food) Contribution(grams float64) (calories, protein float64) {
	return f.CaloriesPer100g * grams / 100, f.ProteinPer100g * grams / 100
}

// DailyLog aggregates one calendar day of nutrition. Totals are always
// recomputed from the day's entries, never incrementally patched.
type DailyLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Day           string    `gorm:"uniqueIndex;not null;size:10" json:"day"`
	ProteinTarget float64   `json:"protein_target"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	CreatedAt     time.Time `json:"created_at"`
}

// FoodEntry records a single consumption event. Calories and protein are
// captured at entry time so later edits to the food do not rewrite history.
type FoodEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DailyLogID    uint      `gorm:"index;not null" json:"daily_log_id"`
	FoodID        uint      `gorm:"index;not null" json:"food_id"`
	QuantityGrams float64   `gorm:"not null" json:"quantity_grams"`
	Calories      float64   `gorm:"not null" json:"calories"`
	Protein       float64   `gorm:"not null" json:"protein"`
	CreatedAt     time.Time `json:"created_at"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

// WeightEntry records one body-weight measurement per day.
type WeightEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"uniqueIndex;not null;size:10" json:"day"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	CreatedAt time.Time `json:"created_at"`
}

// Trend is the read model backing the analytics chart: the most recent daily
// logs and weight entries, ascending by day.
type Trend struct {
	Days    int           `json:"days"`
	Logs    []DailyLog    `json:"logs"`
	Weights []WeightEntry `json:"weights"`
}
