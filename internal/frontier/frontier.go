// Package frontier implements the pending-URL queue that orders a crawl.
package frontier

import (
	"fmt"
	"net/url"
	"strings"
)

// Config tunes admission and ordering.
type Config struct {
	// MaxPages is the crawl's page budget; normal-class admissions stop once
	// total pending size reaches twice this value.
	MaxPages int
	// PriorityKeywords promote any URL containing one of them (case
	// insensitive) to the priority class.
	PriorityKeywords []string
	// PriorityPaths are well-known locations seeded unconditionally at
	// session start, resolved against the base URL.
	PriorityPaths []string
}

// Frontier is a two-class URL queue bound to one site authority. The
// priority class drains before the normal class. A URL is admitted at most
// once per session, keyed by its normalized form. Frontier is not safe for
// concurrent use; a crawl session owns it exclusively.
type Frontier struct {
	base     *url.URL
	cfg      Config
	seen     map[string]struct{}
	priority []string
	normal   []string
}

// New seeds a frontier with the base URL followed by the configured
// well-known paths, all in the priority class.
func New(base *url.URL, cfg Config) (*Frontier, error) {
	if base == nil || !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("frontier: base url must be absolute")
	}
	f := &Frontier{
		base: base,
		cfg:  cfg,
		seen: make(map[string]struct{}),
	}
	f.admit(base.String(), true)
	for _, p := range cfg.PriorityPaths {
		ref, err := url.Parse(p)
		if err != nil {
			continue
		}
		f.admit(base.ResolveReference(ref).String(), true)
	}
	return f, nil
}

// Offer admits a discovered link. Links outside the base authority, already
// seen, or beyond the normal-class size bound are dropped silently.
func (f *Frontier) Offer(raw string) {
	f.admit(raw, false)
}

func (f *Frontier) admit(raw string, seeded bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return
	}
	if !f.sameAuthority(u) {
		return
	}
	key := normalize(u)
	if _, dup := f.seen[key]; dup {
		return
	}
	if seeded || f.matchesKeyword(key) {
		f.seen[key] = struct{}{}
		f.priority = append(f.priority, key)
		return
	}
	if f.Len() >= 2*f.cfg.MaxPages {
		return
	}
	f.seen[key] = struct{}{}
	f.normal = append(f.normal, key)
}

// Next pops the next URL to fetch, draining the priority class first.
func (f *Frontier) Next() (string, bool) {
	if len(f.priority) > 0 {
		u := f.priority[0]
		f.priority = f.priority[1:]
		return u, true
	}
	if len(f.normal) > 0 {
		u := f.normal[0]
		f.normal = f.normal[1:]
		return u, true
	}
	return "", false
}

// Seen reports whether a URL was already admitted this session.
func (f *Frontier) Seen(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	_, ok := f.seen[normalize(u)]
	return ok
}

// Len is the number of pending URLs across both classes.
func (f *Frontier) Len() int {
	return len(f.priority) + len(f.normal)
}

func (f *Frontier) sameAuthority(u *url.URL) bool {
	return u.Host != "" && canonicalHost(u) == canonicalHost(f.base)
}

func (f *Frontier) matchesKeyword(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range f.cfg.PriorityKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// canonicalHost lowercases the authority and strips the scheme's default
// port, so "EXAMPLE.COM:443" and "example.com" compare equal under https.
func canonicalHost(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return host
}

// normalize produces the admission key: lowercased scheme and canonical
// host, fragment dropped, query parameters sorted.
func normalize(u *url.URL) string {
	n := *u
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = canonicalHost(u)
	n.Fragment = ""
	n.RawQuery = n.Query().Encode()
	return n.String()
}
