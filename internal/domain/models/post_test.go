package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Today's Global Pulse - August 24, 2026", "today-s-global-pulse-august-24-2026"},
		{"Hello, World!", "hello-world"},
		{"   ", "post"},
		{"already-slugged", "already-slugged"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 30)
	slug := Slugify(long)

	assert.LessOrEqual(t, len(slug), 50)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestPostFilename(t *testing.T) {
	post := Post{
		Title:           "Today's Global Pulse",
		PublicationDate: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "2026-08-24-today-s-global-pulse.md", post.Filename())
}

func TestPostToMarkdownFrontmatter(t *testing.T) {
	post := Post{
		Title:           "Daily Briefing",
		Content:         "# Daily Briefing\n\nBody text.",
		Summary:         "A short overview.",
		Tags:            []string{"daily-update", "global-news"},
		Category:        "world-news",
		PublicationDate: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
		Author:          "NOOBIE AI",
		WordCount:       4,
	}

	rendered := post.ToMarkdown()

	assert.True(t, strings.HasPrefix(rendered, "---\nlayout: post\n"))
	assert.Contains(t, rendered, `title: "Daily Briefing"`)
	assert.Contains(t, rendered, "date: 2026-08-24T08:00:00Z")
	assert.Contains(t, rendered, `author: "NOOBIE AI"`)
	assert.Contains(t, rendered, "categories: [world-news]")
	assert.Contains(t, rendered, `tags: ["daily-update", "global-news"]`)
	assert.Contains(t, rendered, `excerpt: "A short overview."`)
	assert.Contains(t, rendered, "word_count: 4")
	assert.True(t, strings.HasSuffix(rendered, "Body text."))
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-08-24")
	assert.NoError(t, err)
	assert.Equal(t, "2026-08-24", day)

	_, err = ParseDay("24/08/2026")
	assert.Error(t, err)
}

func TestFoodContribution(t *testing.T) {
	food := Food{CaloriesPer100g: 165, ProteinPer100g: 31}

	calories, protein := food.Contribution(150)
	assert.InDelta(t, 247.5, calories, 1e-9)
	assert.InDelta(t, 46.5, protein, 1e-9)

	calories, protein = food.Contribution(0)
	assert.Zero(t, calories)
	assert.Zero(t, protein)
}
