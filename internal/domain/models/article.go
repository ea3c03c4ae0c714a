package models

import "strings"

// Article represents a single news item aggregated from any source.
type Article struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
	Source        string `json:"source"`
	Category      string `json:"category"`
	Author        string `json:"author,omitempty"`
}

// Valid reports whether the article carries enough content to be used in a
// generation prompt.
func (a Article) Valid() bool {
	return strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.Summary) != ""
}

// DeduplicateArticles drops articles whose titles overlap an earlier title by
// more than 70% of their combined word set. Order is preserved.
func DeduplicateArticles(articles []Article) []Article {
	unique := make([]Article, 0, len(articles))
	seen := make([]map[string]struct{}, 0, len(articles))

	for _, article := range articles {
		words := titleWords(article.Title)
		duplicate := false
		for _, prior := range seen {
			if jaccard(words, prior) > 0.7 {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		unique = append(unique, article)
		seen = append(seen, words)
	}

	return unique
}

func titleWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(title)) {
		words[w] = struct{}{}
	}
	return words
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
