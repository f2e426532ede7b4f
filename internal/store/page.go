package store

import (
	"fmt"
	"strings"

	"sitekb/internal/crawler"
)

// AddPage flattens one crawled page into typed documents: one per title,
// description, heading, paragraph, and table row.
func (s *Store) AddPage(rec crawler.PageRecord) error {
	if rec.Title != "" {
		if err := s.Append(rec.Title, Metadata{Type: TypeTitle, URL: rec.URL}); err != nil {
			return err
		}
	}
	if rec.MetaDescription != "" {
		if err := s.Append(rec.MetaDescription, Metadata{Type: TypeDescription, URL: rec.URL}); err != nil {
			return err
		}
	}
	for _, heading := range rec.Headings {
		if heading == "" {
			continue
		}
		if err := s.Append(heading, Metadata{Type: TypeHeading, URL: rec.URL}); err != nil {
			return err
		}
	}
	for _, para := range rec.Paragraphs {
		if len(strings.Fields(para)) <= 3 {
			continue
		}
		if err := s.Append(para, Metadata{Type: TypeContent, URL: rec.URL}); err != nil {
			return err
		}
	}
	for _, row := range rec.TableRows {
		if strings.TrimSpace(row) == "" {
			continue
		}
		if err := s.Append(row, Metadata{Type: TypeTable, URL: rec.URL}); err != nil {
			return err
		}
	}
	return nil
}

// AddPageText chunks the page's combined text and stores every chunk under
// the website source. Pages with fewer than minContentLen bytes of text are
// skipped outright.
func (s *Store) AddPageText(pageURL, text string) error {
	if len(strings.TrimSpace(text)) < minContentLen {
		return nil
	}
	for i, chunk := range chunkText(text, maxChunkLen) {
		idx := i
		meta := Metadata{
			Type:   TypeWebsiteContent,
			Source: SourceWebsite,
			URL:    pageURL,
			Chunk:  &idx,
		}
		if err := s.Append(chunk, meta); err != nil {
			return fmt.Errorf("append chunk %d: %w", i, err)
		}
	}
	return nil
}
