package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleProfile = `{
  "personal_info": {
    "name": "Asha Rao",
    "title": "Site Engineer",
    "email": "asha@example.com",
    "phone": "+44 20 7946 0000",
    "location": "London, UK",
    "summary": "Engineer focused on resilient web platforms."
  },
  "education": [
    {"degree": "BEng Computing", "institution": "City University", "location": "London", "year": "2015"}
  ],
  "experience": [
    {
      "title": "Engineer",
      "company": "Acme",
      "location": "London",
      "period": "2016-2020",
      "responsibilities": ["Ran the crawl pipeline", "Kept the index fresh"]
    }
  ],
  "skills": {
    "programming_languages": ["Go", "Python"],
    "cloud": ["GCP"]
  },
  "projects": [
    {"name": "sitekb", "description": "Site knowledge service", "technologies": ["Go", "Colly"]}
  ],
  "certifications": [
    {"name": "CKA", "issuer": "CNCF", "year": "2021"}
  ],
  "languages": [
    {"name": "English", "level": "Native"}
  ]
}`

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProfileFlattens(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.Load())
	require.NoError(t, st.LoadProfile(writeProfile(t, sampleProfile)))

	docs := st.All()
	require.Len(t, docs, 13)

	wantTexts := []string{
		"Asha Rao - Site Engineer",
		"Contact: asha@example.com | +44 20 7946 0000 | London, UK",
		"Engineer focused on resilient web platforms.",
		"BEng Computing from City University, London (2015)",
		"Engineer at Acme, London (2016-2020)",
		"Ran the crawl pipeline",
		"Kept the index fresh",
		"Cloud: GCP",
		"Programming Languages: Go, Python",
		"Project: sitekb - Site knowledge service",
		"Technologies: Go, Colly",
		"CKA (CNCF, 2021)",
		"English: Native",
	}
	wantTypes := []DocType{
		TypeHeader,
		TypeContact,
		TypeSummary,
		TypeEducation,
		TypeExperienceHeader,
		TypeExperienceDetail,
		TypeExperienceDetail,
		TypeSkills,
		TypeSkills,
		TypeProject,
		TypeProjectTech,
		TypeCertification,
		TypeLanguage,
	}
	for i, doc := range docs {
		require.Equal(t, wantTexts[i], doc.Text, "document %d text", i)
		require.Equal(t, wantTypes[i], doc.Metadata.Type, "document %d type", i)
	}
}

func TestLoadProfilePersists(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.Load())
	require.NoError(t, st.LoadProfile(writeProfile(t, sampleProfile)))

	reopened := New(st.Path(), nil)
	require.NoError(t, reopened.Load())
	require.Equal(t, st.Count(), reopened.Count())
}

func TestLoadProfileReplacesExistingDocuments(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.Load())
	require.NoError(t, st.Append("old website chunk of reasonable length", Metadata{
		Type:   TypeWebsiteContent,
		Source: SourceWebsite,
		URL:    "https://acme.test/",
	}))

	require.NoError(t, st.LoadProfile(writeProfile(t, sampleProfile)))
	for _, doc := range st.All() {
		require.NotEqual(t, TypeWebsiteContent, doc.Metadata.Type)
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	st := tempStore(t)
	err := st.LoadProfile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorContains(t, err, "read profile")
}

func TestLoadProfileBadJSON(t *testing.T) {
	st := tempStore(t)
	err := st.LoadProfile(writeProfile(t, "{broken"))
	require.ErrorContains(t, err, "decode profile")
}
