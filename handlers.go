package blog

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bradleydoering/cloudrenovation-blog/seo"
	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// handleIndex serves the blog listing page, optionally filtered by
// ?category=. Posts and categories are fetched concurrently; either
// fetch failing degrades that section to empty rather than failing the
// page.
func (a *App) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")

	postsCh := make(chan []wp.Post, 1)
	catsCh := make(chan []wp.Category, 1)

	go func() {
		var posts []wp.Post
		var err error
		if category != "" {
			posts, _, err = a.Service.PostsByCategory(ctx, category, a.Config.PageSize, "")
		} else {
			posts, _, err = a.Service.Posts(ctx, a.Config.PageSize, "")
		}
		if err != nil {
			a.log.Warn("listing fetch degraded to empty", "category", category, "error", err)
			posts = nil
		}
		postsCh <- posts
	}()
	go func() {
		cats, err := a.Service.Categories(ctx)
		if err != nil {
			a.log.Warn("categories fetch degraded to empty", "error", err)
			cats = nil
		}
		catsCh <- cats
	}()

	posts, cats := <-postsCh, <-catsCh
	meta := seo.IndexMetadata(a.Site())
	return Render(c, a.Views.Index(posts, cats, category, meta))
}

// handlePost serves a detail page. A failed or empty primary fetch
// yields not-found, never a broken page; a failed related fetch leaves
// that section empty.
func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	post, err := a.Service.PostBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, wp.ErrNotFound) {
			a.log.Warn("detail fetch failed, serving not-found", "slug", slug, "error", err)
		}
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	related, err := a.Service.RecentPosts(ctx, 3, post.ID)
	if err != nil {
		a.log.Warn("related fetch degraded to empty", "slug", slug, "error", err)
		related = nil
	}

	site := a.Site()
	meta := seo.Derive(*post, site)
	articleLD := seo.ArticleJSONLD(*post, site)
	breadcrumbLD := seo.BreadcrumbJSONLD(*post, site)
	return Render(c, a.Views.Post(*post, related, meta, articleLD, breadcrumbLD))
}

// handleSitemap serves the sitemap, degrading to an index-only entry
// when the upstream is unreachable.
func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Service.SitemapPosts(c.Request().Context(), a.Config.SitemapLimit)
	if err != nil {
		a.log.Warn("sitemap fetch degraded to index-only", "error", err)
		posts = nil
	}
	return a.renderSitemap(c, posts)
}

// handleFeed serves the RSS feed, degrading to an empty channel on
// upstream failure.
func (a *App) handleFeed(c echo.Context) error {
	posts, _, err := a.Service.Posts(c.Request().Context(), a.Config.PageSize, "")
	if err != nil {
		a.log.Warn("feed fetch degraded to empty", "error", err)
		posts = nil
	}
	return a.renderFeed(c, posts)
}

// handleRobots declares a wildcard-allow policy with disallows for the
// API and admin prefixes, JSON resources and any query-string path,
// plus sitemap pointers.
func (a *App) handleRobots(c echo.Context) error {
	base := a.Config.URL
	body := fmt.Sprintf(`User-agent: *
Allow: /
Disallow: /api/
Disallow: /admin/
Disallow: /*.json$
Disallow: /*?*

Sitemap: %s/sitemap.xml
Sitemap: %s/blog/sitemap.xml

Host: %s
`, base, base, base)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", "path", c.Request().URL.Path, "error", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
