// Package store persists chunked knowledge documents to a flat JSON file.
package store

import (
	"fmt"
	"strings"
)

// DocType labels the origin of a document's text.
type DocType string

// Document types produced by profile ingestion and website crawls.
const (
	TypeHeader           DocType = "header"
	TypeContact          DocType = "contact"
	TypeSummary          DocType = "summary"
	TypeEducation        DocType = "education"
	TypeExperienceHeader DocType = "experience_header"
	TypeExperienceDetail DocType = "experience_detail"
	TypeSkills           DocType = "skills"
	TypeProject          DocType = "project"
	TypeProjectTech      DocType = "project_tech"
	TypeCertification    DocType = "certification"
	TypeLanguage         DocType = "language"
	TypeTitle            DocType = "title"
	TypeDescription      DocType = "description"
	TypeHeading          DocType = "heading"
	TypeContent          DocType = "content"
	TypeTable            DocType = "table"
	TypeWebsiteContent   DocType = "website_content"
)

// SourceWebsite marks documents ingested by a crawl rather than a profile.
const SourceWebsite = "website"

var validTypes = map[DocType]struct{}{
	TypeHeader:           {},
	TypeContact:          {},
	TypeSummary:          {},
	TypeEducation:        {},
	TypeExperienceHeader: {},
	TypeExperienceDetail: {},
	TypeSkills:           {},
	TypeProject:          {},
	TypeProjectTech:      {},
	TypeCertification:    {},
	TypeLanguage:         {},
	TypeTitle:            {},
	TypeDescription:      {},
	TypeHeading:          {},
	TypeContent:          {},
	TypeTable:            {},
	TypeWebsiteContent:   {},
}

// Valid reports whether t is one of the known document types.
func (t DocType) Valid() bool {
	_, ok := validTypes[t]
	return ok
}

// Metadata describes where a document's text came from.
type Metadata struct {
	Type   DocType `json:"type"`
	Source string  `json:"source,omitempty"`
	URL    string  `json:"url,omitempty"`
	Chunk  *int    `json:"chunk,omitempty"`
}

// Document is one searchable unit of text.
type Document struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// NewDocument validates text and metadata before constructing a Document.
func NewDocument(text string, meta Metadata) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("document text must be non-empty")
	}
	if !meta.Type.Valid() {
		return Document{}, fmt.Errorf("unknown document type %q", meta.Type)
	}
	return Document{Text: text, Metadata: meta}, nil
}
