package versioncheck

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hackhub-labs/hackadmin/internal/branding"
)

// PrintBannerFromCache prints an update notice if the cached check found a
// newer release, and refreshes a stale cache in a background goroutine. It
// never blocks on the network.
func (c *Checker) PrintBannerFromCache(w io.Writer, dir string) {
	cache, err := LoadCache(dir)
	if err != nil {
		return
	}
	if cache != nil && cache.UpdateAvailable {
		PrintBanner(w, cache.CurrentVersion, cache.LatestVersion)
	}
	if IsStale(cache, DefaultCacheMaxAge) {
		go func() { _, _ = c.Refresh(context.Background(), dir) }()
	}
}

// PrintBanner prints the update notification to w.
func PrintBanner(w io.Writer, current, latest string) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", current, latest)
	fmt.Fprintf(w, "    Download it from https://github.com/%s/releases\n\n", branding.GitHubRepo())
}

// Refresh fetches the latest release, stores the result in dir, and returns it.
func (c *Checker) Refresh(ctx context.Context, dir string) (*Cache, error) {
	release, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	available, err := IsUpdateAvailable(c.currentVersion, release.Version)
	if err != nil {
		// Development builds have no comparable version.
		available = false
	}

	cache := &Cache{
		LatestVersion:   release.Version,
		CurrentVersion:  c.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	}
	if err := SaveCache(dir, cache); err != nil {
		return cache, err
	}
	return cache, nil
}
