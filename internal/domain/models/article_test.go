package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleValid(t *testing.T) {
	assert.True(t, Article{Title: "Markets rally", Summary: "Stocks close higher."}.Valid())
	assert.False(t, Article{Title: "Markets rally"}.Valid())
	assert.False(t, Article{Summary: "Stocks close higher."}.Valid())
	assert.False(t, Article{Title: "  ", Summary: "  "}.Valid())
}

func TestDeduplicateArticlesDropsNearIdenticalTitles(t *testing.T) {
	articles := []Article{
		{Title: "Global markets rally on rate cut hopes", Source: "A"},
		{Title: "Global markets rally on rate cut hopes today", Source: "B"},
		{Title: "New battery technology announced", Source: "C"},
	}

	unique := DeduplicateArticles(articles)

	assert.Len(t, unique, 2)
	assert.Equal(t, "A", unique[0].Source)
	assert.Equal(t, "C", unique[1].Source)
}

func TestDeduplicateArticlesKeepsDistinctTitles(t *testing.T) {
	articles := []Article{
		{Title: "Economy grows in second quarter"},
		{Title: "Storm approaches the gulf coast"},
		{Title: "Startup raises record funding round"},
	}

	assert.Len(t, DeduplicateArticles(articles), 3)
}

func TestDeduplicateArticlesPreservesOrder(t *testing.T) {
	articles := []Article{
		{Title: "first story"},
		{Title: "second story entirely different words"},
	}

	unique := DeduplicateArticles(articles)
	assert.Equal(t, "first story", unique[0].Title)
	assert.Equal(t, "second story entirely different words", unique[1].Title)
}
