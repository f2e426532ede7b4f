package crawler

import "context"

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResult, error)
}

// Gate decides whether a site may be crawled at all.
type Gate interface {
	Allowed(ctx context.Context, baseURL string) bool
}

// Extractor parses an HTML payload into a PageRecord.
type Extractor interface {
	Extract(body []byte, pageURL string) (PageRecord, error)
}
