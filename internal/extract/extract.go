// Package extract turns raw HTML into structured page records.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitekb/internal/crawler"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonTextRune   = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
)

// CleanText collapses whitespace runs into single spaces and trims the ends.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// CleanTextStrict drops characters outside letters, digits, and basic
// punctuation before normalizing whitespace.
func CleanTextStrict(text string) string {
	return CleanText(nonTextRune.ReplaceAllString(text, ""))
}

// Extractor implements crawler.Extractor with goquery selectors.
type Extractor struct{}

// New builds an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses body and collects the title, meta description, headings,
// paragraph-like text, table rows, and same-document hyperlinks. Script and
// style elements are removed before any text is read.
func (e *Extractor) Extract(body []byte, pageURL string) (crawler.PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return crawler.PageRecord{}, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style").Remove()

	record := crawler.PageRecord{
		URL:             pageURL,
		Title:           CleanTextStrict(doc.Find("title").First().Text()),
		MetaDescription: CleanTextStrict(doc.Find(`meta[name="description"]`).First().AttrOr("content", "")),
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if heading := CleanTextStrict(sel.Text()); heading != "" {
			record.Headings = append(record.Headings, heading)
		}
	})

	record.Paragraphs = collectParagraphs(doc)
	record.TableRows = collectTableRows(doc)
	record.Links = collectLinks(doc, pageURL)
	return record, nil
}

// collectParagraphs walks the common content containers and keeps any text
// fragment longer than three words. Nested containers can surface the same
// fragment more than once; downstream ranking tolerates that.
func collectParagraphs(doc *goquery.Document) []string {
	var paragraphs []string
	doc.Find("main, article, div, section").Each(func(_ int, container *goquery.Selection) {
		container.Find("p, div, span, td, li, a").Each(func(_ int, sel *goquery.Selection) {
			text := CleanTextStrict(sel.Text())
			if len(strings.Fields(text)) > 3 {
				paragraphs = append(paragraphs, text)
			}
		})
	})
	return paragraphs
}

func collectTableRows(doc *goquery.Document) []string {
	var rows []string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				if strings.TrimSpace(cell.Text()) == "" {
					return
				}
				cells = append(cells, CleanTextStrict(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " | "))
			}
		})
	})
	return rows
}

func collectLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		link := resolved.String()
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links
}
