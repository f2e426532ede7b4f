// Package crawler defines core types shared across subsystems and drives the
// sequential crawl loop.
package crawler

import (
	"fmt"
	"strings"
	"time"
)

// PageRecord captures the extracted content of one fetched page. Records are
// immutable once produced. Links ride along from the same parse for frontier
// discovery; they are never persisted.
type PageRecord struct {
	URL             string
	Title           string
	Headings        []string
	Paragraphs      []string
	TableRows       []string
	MetaDescription string
	Links           []string
}

// Text joins the record's textual fields into one whitespace-separated
// string, the form the chunking ingest path consumes.
func (p PageRecord) Text() string {
	parts := make([]string, 0, 2+len(p.Headings)+len(p.Paragraphs)+len(p.TableRows))
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.MetaDescription != "" {
		parts = append(parts, p.MetaDescription)
	}
	parts = append(parts, p.Headings...)
	parts = append(parts, p.Paragraphs...)
	parts = append(parts, p.TableRows...)
	return strings.Join(parts, " ")
}

// FetchRequest captures everything needed to fetch a URL. A zero Timeout
// falls back to the fetcher's configured default.
type FetchRequest struct {
	URL     string
	Timeout time.Duration
}

// FetchResult is returned by a Fetcher implementation on success.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// FetchError describes a failed retrieval. Transport errors, timeouts, and
// non-2xx statuses all land here.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
