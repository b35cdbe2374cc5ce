// Package blog is a headless-CMS blog frontend: it fetches articles
// from a WordPress GraphQL endpoint, normalizes them into a stable
// content model, derives SEO metadata and structured data, and serves
// the listing/detail pages, sitemap, robots.txt and RSS feed.
//
// Page markup is owned by the caller: handlers pass normalized posts
// and resolved metadata to user-provided templ components via the
// ViewFuncs struct.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/bradleydoering/cloudrenovation-blog/seo"
	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// ContentService is the upstream fetch surface the handlers consume.
// *wp.Service implements it; tests substitute a stub.
type ContentService interface {
	Posts(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error)
	PostsByCategory(ctx context.Context, categorySlug string, first int, after string) ([]wp.Post, wp.PageInfo, error)
	PostBySlug(ctx context.Context, slug string) (*wp.Post, error)
	RecentPosts(ctx context.Context, first int, excludeIDs ...string) ([]wp.Post, error)
	SitemapPosts(ctx context.Context, first int) ([]wp.SitemapPost, error)
	Categories(ctx context.Context) ([]wp.Category, error)
}

// ViewFuncs holds the caller-provided templ components the handlers
// render into. This is the boundary that keeps layout and styling out
// of this package.
type ViewFuncs struct {
	Index func(posts []wp.Post, categories []wp.Category, activeCategory string, meta seo.Metadata) templ.Component
	Post  func(post wp.Post, related []wp.Post, meta seo.Metadata, articleLD, breadcrumbLD string) templ.Component

	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the upstream service, caches, revalidation
// handler and routes.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Service ContentService
	Pages   *PageCache
	Views   ViewFuncs

	log          *slog.Logger
	limiter      *rateLimiter
	customRoutes []func(*App)
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Site returns the site-level values used by SEO derivation.
func (a *App) Site() seo.Site {
	return seo.Site{
		BaseURL:        a.Config.URL,
		Name:           a.Config.Name,
		Description:    a.Config.Description,
		DefaultImage:   a.Config.URL + a.Config.DefaultImage,
		LogoURL:        a.Config.URL + a.Config.LogoPath,
		FallbackAuthor: a.Config.Author,
	}
}

// Start initializes the upstream client, caches, middleware and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init performs everything Start does short of listening. Split out so
// tests can drive the configured Echo instance directly.
func (a *App) init() error {
	if a.Service == nil {
		client, err := wp.NewClient(a.Config.GraphQLEndpoint,
			wp.WithCacheWindow(a.Config.CacheWindow),
			wp.WithUserAgent(a.Config.UserAgent),
		)
		if err != nil {
			return fmt.Errorf("blog: init upstream client: %w", err)
		}
		a.Service = wp.NewService(client, a.log)
	}
	if a.Pages == nil {
		a.Pages = NewPageCache(a.Config.CacheWindow)
	}
	a.limiter = newRateLimiter(10, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/robots.txt", a.handleRobots)

	e.GET("/blog", a.handleIndex)
	e.GET("/blog/sitemap.xml", a.handleSitemap)
	e.GET("/blog/feed.xml", a.handleFeed)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/blog")
	})

	// Out-of-band side channel: shares no state with renders beyond
	// the page cache it invalidates.
	e.POST("/api/revalidate", a.handleRevalidate)
	e.GET("/api/revalidate", a.handleRevalidateGet)
}
