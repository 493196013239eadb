// Package httputil fetches quest files over HTTP.
//
// A quest file may be given as an http(s) URL instead of a local path.
// [Fetcher] downloads it with retries for transient failures and keeps the
// last good copy in a [Cache]. Revalidation uses ETags, so an unchanged file
// costs a 304. When the server cannot be reached, a stale cached copy is
// served instead of failing.
//
// Usage:
//
//	c, err := httputil.NewCache(dir, time.Hour)
//	f := httputil.NewFetcher(c)
//	data, err := f.Fetch(ctx, "https://example.com/quests.json")
package httputil
