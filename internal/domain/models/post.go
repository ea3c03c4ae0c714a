package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Post is a generated blog page ready for publication.
type Post struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Summary         string    `json:"summary"`
	Tags            []string  `json:"tags"`
	Category        string    `json:"category"`
	PublicationDate time.Time `json:"publication_date"`
	Author          string    `json:"author"`
	WordCount       int       `json:"word_count"`
}

// ToMarkdown renders the post as a Jekyll page with YAML frontmatter.
func (p Post) ToMarkdown() string {
	quotedTags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		quotedTags = append(quotedTags, fmt.Sprintf("%q", tag))
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("layout: post\n")
	fmt.Fprintf(&b, "title: %q\n", p.Title)
	fmt.Fprintf(&b, "date: %s\n", p.PublicationDate.Format(time.RFC3339))
	fmt.Fprintf(&b, "author: %q\n", p.Author)
	fmt.Fprintf(&b, "categories: [%s]\n", p.Category)
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quotedTags, ", "))
	fmt.Fprintf(&b, "excerpt: %q\n", p.Summary)
	fmt.Fprintf(&b, "word_count: %d\n", p.WordCount)
	b.WriteString("---\n\n")
	b.WriteString(p.Content)
	return b.String()
}

// Filename derives the Jekyll-compatible post file name, e.g.
// "2026-08-24-todays-global-pulse.md".
func (p Post) Filename() string {
	return fmt.Sprintf("%s-%s.md", p.PublicationDate.Format(DayLayout), Slugify(p.Title))
}

// Slugify lowercases a title and collapses non-alphanumeric runs into single
// dashes, capped at 50 characters.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	if slug == "" {
		slug = "post"
	}
	return slug
}

// PublishResult describes where a post ended up.
type PublishResult struct {
	Path      string `json:"path"`
	URL       string `json:"url,omitempty"`
	CommitSHA string `json:"commit_sha,omitempty"`
	Mock      bool   `json:"mock"`
}

// Pipeline run statuses.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// RunReport summarizes one pipeline invocation for the trigger response and
// the logs.
type RunReport struct {
	Status       string         `json:"status"`
	ArticleCount int            `json:"article_count"`
	PostTitle    string         `json:"post_title,omitempty"`
	Publish      *PublishResult `json:"publish,omitempty"`
	Error        string         `json:"error,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}
