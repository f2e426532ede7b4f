package frontier

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustFrontier(t *testing.T, base string, cfg Config) *Frontier {
	t.Helper()
	u, err := url.Parse(base)
	require.NoError(t, err)
	f, err := New(u, cfg)
	require.NoError(t, err)
	return f
}

func drain(f *Frontier) []string {
	var out []string
	for {
		u, ok := f.Next()
		if !ok {
			return out
		}
		out = append(out, u)
	}
}

func TestNewRejectsRelativeBase(t *testing.T) {
	u, err := url.Parse("/just/a/path")
	require.NoError(t, err)
	_, err = New(u, Config{MaxPages: 5})
	require.Error(t, err)
}

func TestSeedsBaseAndWellKnownPaths(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{
		MaxPages:      5,
		PriorityPaths: []string{"about.html", "contact.html"},
	})

	require.Equal(t, []string{
		"https://example.com/",
		"https://example.com/about.html",
		"https://example.com/contact.html",
	}, drain(f))
}

func TestSeedsSkipForeignAuthority(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{
		MaxPages:      5,
		PriorityPaths: []string{"about.html", "https://other.org/about.html"},
	})

	require.Equal(t, []string{
		"https://example.com/",
		"https://example.com/about.html",
	}, drain(f))
}

func TestOfferRejectsOtherAuthorities(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{MaxPages: 5})
	drain(f)

	f.Offer("https://evil.example.org/page")
	f.Offer("https://example.com:8443/page")
	f.Offer("mailto:someone@example.com")
	f.Offer("javascript:void(0)")
	f.Offer("https://example.com/fine")

	require.Equal(t, []string{"https://example.com/fine"}, drain(f))
}

func TestOfferDeduplicatesNormalizedForms(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{MaxPages: 5})
	drain(f)

	f.Offer("https://example.com/page?b=2&a=1")
	f.Offer("HTTPS://EXAMPLE.COM:443/page?a=1&b=2#section")
	f.Offer("https://example.com/page?b=2&a=1")

	require.Equal(t, []string{"https://example.com/page?a=1&b=2"}, drain(f))
	require.True(t, f.Seen("https://example.com/page?a=1&b=2"))
	require.False(t, f.Seen("https://example.com/other"))
}

func TestBaseURLNeverReadmitted(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{MaxPages: 5})
	drain(f)

	f.Offer("https://example.com/")
	_, ok := f.Next()
	require.False(t, ok)
}

func TestKeywordLinksJumpTheQueue(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{
		MaxPages:         5,
		PriorityKeywords: []string{"contact", "notification"},
	})
	drain(f)

	f.Offer("https://example.com/news")
	f.Offer("https://example.com/Contact-Us")
	f.Offer("https://example.com/gallery")
	f.Offer("https://example.com/notifications/latest")

	require.Equal(t, []string{
		"https://example.com/Contact-Us",
		"https://example.com/notifications/latest",
		"https://example.com/news",
		"https://example.com/gallery",
	}, drain(f))
}

func TestNormalAdmissionsBounded(t *testing.T) {
	f := mustFrontier(t, "https://example.com/", Config{
		MaxPages:         2,
		PriorityKeywords: []string{"rules"},
	})
	drain(f)

	for i := 0; i < 20; i++ {
		f.Offer(fmt.Sprintf("https://example.com/page-%d", i))
	}
	require.Equal(t, 4, f.Len())

	for i := 0; i < 20; i++ {
		f.Offer(fmt.Sprintf("https://example.com/rules-%d", i))
	}
	require.Equal(t, 24, f.Len())
}
