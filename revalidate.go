package blog

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// revalidateRequest is the structured-body form of the webhook.
type revalidateRequest struct {
	Secret string `json:"secret"`
	Slug   string `json:"slug"`
	Type   string `json:"type"`
}

type revalidateResponse struct {
	Revalidated bool     `json:"revalidated"`
	Now         int64    `json:"now"`
	Paths       []string `json:"paths"`
	Method      string   `json:"method,omitempty"`
}

type revalidateFailure struct {
	Message string `json:"message"`
}

// InvalidationPaths computes the path set a content change affects.
// With a slug: the item's detail page, the listing index (which lists
// it), and the sitemap (whose modification timestamp it moves). Without
// a slug it is a global refresh of index and sitemap only.
func InvalidationPaths(slug string) []string {
	if slug != "" {
		return []string{"/blog/" + slug, "/blog", "/blog/sitemap.xml"}
	}
	return []string{"/blog", "/blog/sitemap.xml"}
}

// handleRevalidate is the webhook entry point for the upstream CMS.
// Auth fails closed, and misconfiguration is reported distinctly from a
// rejected credential so operators can tell "not set up" from
// "attacked". The whole path set is invalidated or nothing is.
func (a *App) handleRevalidate(c echo.Context) error {
	var req revalidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, revalidateFailure{Message: "Malformed request body"})
	}
	return a.revalidate(c, req, "")
}

// handleRevalidateGet is the query-string form for manual testing.
func (a *App) handleRevalidateGet(c echo.Context) error {
	req := revalidateRequest{
		Secret: c.QueryParam("secret"),
		Slug:   c.QueryParam("slug"),
		Type:   c.QueryParam("type"),
	}
	return a.revalidate(c, req, http.MethodGet)
}

func (a *App) revalidate(c echo.Context, req revalidateRequest, method string) error {
	if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, revalidateFailure{Message: "Too many requests"})
	}

	token := a.Config.RevalidateToken
	if token == "" {
		a.log.Error("revalidation requested but no token is configured")
		return c.JSON(http.StatusInternalServerError, revalidateFailure{Message: "Revalidation token not configured"})
	}
	if req.Secret != token {
		a.log.Warn("revalidation rejected: invalid token", "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, revalidateFailure{Message: "Invalid token"})
	}

	// Only a post-type change maps to a detail path; other types still
	// refresh the index and sitemap.
	slug := req.Slug
	if req.Type != "" && req.Type != "post" {
		slug = ""
	}

	paths := InvalidationPaths(slug)
	a.Pages.Invalidate(paths...)
	a.log.Info("revalidated paths", "paths", paths)

	return c.JSON(http.StatusOK, revalidateResponse{
		Revalidated: true,
		Now:         time.Now().UnixMilli(),
		Paths:       paths,
		Method:      method,
	})
}
