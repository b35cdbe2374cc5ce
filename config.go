package blog

import (
	"strings"
	"time"
)

// SiteConfig holds all configuration for the blog frontend.
type SiteConfig struct {
	Name        string // Site name (default "Cloud Renovation")
	URL         string // Canonical origin, no trailing slash (default "http://localhost:3000")
	Description string // Site description for meta tags and the feed
	Author      string // Fallback author/publisher name for structured data

	Addr string // Listen address (default ":3000")

	GraphQLEndpoint string // Required: upstream WPGraphQL endpoint
	RevalidateToken string // Shared secret for the revalidation webhook

	UserAgent    string        // User-Agent sent upstream
	CacheWindow  time.Duration // Response + page cache TTL (default 60s)
	DefaultImage string        // Default social card image path (default "/og-default.jpg")
	LogoPath     string        // Publisher logo path (default "/logo.png")
	PageSize     int           // Posts per listing page (default 12)
	SitemapLimit int           // Max posts fetched for the sitemap (default 1000)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Cloud Renovation"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.UserAgent == "" {
		c.UserAgent = "CloudReno-Blog/1.0"
	}
	if c.CacheWindow == 0 {
		c.CacheWindow = 60 * time.Second
	}
	if c.DefaultImage == "" {
		c.DefaultImage = "/og-default.jpg"
	}
	if c.LogoPath == "" {
		c.LogoPath = "/logo.png"
	}
	if c.PageSize == 0 {
		c.PageSize = 12
	}
	if c.SitemapLimit == 0 {
		c.SitemapLimit = 1000
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance
// before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithService injects a prebuilt upstream service, bypassing client
// construction in Start. Tests use this with a stub transport.
func WithService(svc ContentService) Option {
	return func(a *App) {
		a.Service = svc
	}
}

// WithPageCache substitutes the rendered-page cache, e.g. with a
// zero-TTL cache in tests.
func WithPageCache(pc *PageCache) Option {
	return func(a *App) {
		a.Pages = pc
	}
}
