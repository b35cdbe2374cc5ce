package blog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/pkg/errors"

	"github.com/bradleydoering/cloudrenovation-blog/seo"
	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// stubService implements ContentService with overridable behavior. Any
// nil field answers with an empty successful result.
type stubService struct {
	posts        func(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error)
	postsByCat   func(ctx context.Context, categorySlug string, first int, after string) ([]wp.Post, wp.PageInfo, error)
	postBySlug   func(ctx context.Context, slug string) (*wp.Post, error)
	recent       func(ctx context.Context, first int, excludeIDs ...string) ([]wp.Post, error)
	sitemapPosts func(ctx context.Context, first int) ([]wp.SitemapPost, error)
	categories   func(ctx context.Context) ([]wp.Category, error)
}

func (s *stubService) Posts(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error) {
	if s.posts != nil {
		return s.posts(ctx, first, after)
	}
	return nil, wp.PageInfo{}, nil
}

func (s *stubService) PostsByCategory(ctx context.Context, categorySlug string, first int, after string) ([]wp.Post, wp.PageInfo, error) {
	if s.postsByCat != nil {
		return s.postsByCat(ctx, categorySlug, first, after)
	}
	return nil, wp.PageInfo{}, nil
}

func (s *stubService) PostBySlug(ctx context.Context, slug string) (*wp.Post, error) {
	if s.postBySlug != nil {
		return s.postBySlug(ctx, slug)
	}
	return nil, wp.ErrNotFound
}

func (s *stubService) RecentPosts(ctx context.Context, first int, excludeIDs ...string) ([]wp.Post, error) {
	if s.recent != nil {
		return s.recent(ctx, first, excludeIDs...)
	}
	return nil, nil
}

func (s *stubService) SitemapPosts(ctx context.Context, first int) ([]wp.SitemapPost, error) {
	if s.sitemapPosts != nil {
		return s.sitemapPosts(ctx, first)
	}
	return nil, nil
}

func (s *stubService) Categories(ctx context.Context) ([]wp.Category, error) {
	if s.categories != nil {
		return s.categories(ctx)
	}
	return nil, nil
}

func textComponent(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func testViews() ViewFuncs {
	return ViewFuncs{
		Index: func(posts []wp.Post, categories []wp.Category, activeCategory string, meta seo.Metadata) templ.Component {
			return textComponent(fmt.Sprintf("index posts=%d categories=%d active=%q canonical=%s",
				len(posts), len(categories), activeCategory, meta.Canonical))
		},
		Post: func(post wp.Post, related []wp.Post, meta seo.Metadata, articleLD, breadcrumbLD string) templ.Component {
			return textComponent(fmt.Sprintf("post slug=%s related=%d canonical=%s",
				post.Slug, len(related), meta.Canonical))
		},
		NotFound:    func() templ.Component { return textComponent("not found") },
		ServerError: func() templ.Component { return textComponent("server error") },
	}
}

func newTestApp(t *testing.T, svc ContentService, opts ...Option) *App {
	t.Helper()
	cfg := SiteConfig{
		URL:             "https://cloudrenovation.ca",
		Description:     "Renovation guides.",
		Author:          "Cloud Renovation Team",
		GraphQLEndpoint: "https://cms.example.com/graphql",
		RevalidateToken: "s3cret",
	}
	a := New(cfg, testViews(), append([]Option{WithService(svc)}, opts...)...)
	if err := a.init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return a
}

func doRequest(a *App, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func samplePost(slug string) wp.Post {
	return wp.Post{
		ID:      "cG9zdDox",
		Title:   "Kitchen Remodel Guide",
		Slug:    slug,
		Excerpt: "A short guide.",
		Date:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:  wp.StatusPublished,
	}
}

func TestIndexRendersPostsAndCategories(t *testing.T) {
	svc := &stubService{
		posts: func(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error) {
			return []wp.Post{samplePost("a"), samplePost("b")}, wp.PageInfo{}, nil
		},
		categories: func(ctx context.Context) ([]wp.Category, error) {
			return []wp.Category{{Name: "Kitchens", Slug: "kitchens"}}, nil
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "posts=2") || !strings.Contains(body, "categories=1") {
		t.Fatalf("unexpected body: %q", body)
	}
	if !strings.Contains(body, "canonical=https://cloudrenovation.ca/blog") {
		t.Fatalf("index canonical missing: %q", body)
	}
}

func TestIndexFiltersByCategory(t *testing.T) {
	var gotCategory string
	svc := &stubService{
		postsByCat: func(ctx context.Context, categorySlug string, first int, after string) ([]wp.Post, wp.PageInfo, error) {
			gotCategory = categorySlug
			return []wp.Post{samplePost("a")}, wp.PageInfo{}, nil
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog?category=kitchens", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCategory != "kitchens" {
		t.Fatalf("expected category filter forwarded, got %q", gotCategory)
	}
	if !strings.Contains(rec.Body.String(), `active="kitchens"`) {
		t.Fatalf("active category not passed to view: %q", rec.Body.String())
	}
}

func TestIndexDegradesWhenUpstreamFails(t *testing.T) {
	svc := &stubService{
		posts: func(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error) {
			return nil, wp.PageInfo{}, errors.New("upstream down")
		},
		categories: func(ctx context.Context) ([]wp.Category, error) {
			return nil, errors.New("upstream down")
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("listing must render on upstream failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "posts=0") {
		t.Fatalf("expected empty listing, got %q", rec.Body.String())
	}
}

func TestPostNotFound(t *testing.T) {
	a := newTestApp(t, &stubService{})

	rec := doRequest(a, http.MethodGet, "/blog/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("expected not-found view, got %q", rec.Body.String())
	}
}

func TestPostUpstreamFailureServesNotFound(t *testing.T) {
	svc := &stubService{
		postBySlug: func(ctx context.Context, slug string) (*wp.Post, error) {
			return nil, errors.New("upstream down")
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/kitchen-remodel", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on primary fetch failure, got %d", rec.Code)
	}
}

func TestPostRelatedFailureDegrades(t *testing.T) {
	svc := &stubService{
		postBySlug: func(ctx context.Context, slug string) (*wp.Post, error) {
			p := samplePost(slug)
			return &p, nil
		},
		recent: func(ctx context.Context, first int, excludeIDs ...string) ([]wp.Post, error) {
			return nil, errors.New("upstream down")
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/kitchen-remodel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("related failure must not fail the page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "related=0") {
		t.Fatalf("expected empty related section, got %q", rec.Body.String())
	}
}

func TestPostRelatedExcludesCurrent(t *testing.T) {
	var gotExclude []string
	svc := &stubService{
		postBySlug: func(ctx context.Context, slug string) (*wp.Post, error) {
			p := samplePost(slug)
			return &p, nil
		},
		recent: func(ctx context.Context, first int, excludeIDs ...string) ([]wp.Post, error) {
			gotExclude = excludeIDs
			return []wp.Post{samplePost("other")}, nil
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/kitchen-remodel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gotExclude) != 1 || gotExclude[0] != "cG9zdDox" {
		t.Fatalf("expected current post excluded from related, got %v", gotExclude)
	}
}

func TestSitemapListsPosts(t *testing.T) {
	svc := &stubService{
		sitemapPosts: func(ctx context.Context, first int) ([]wp.SitemapPost, error) {
			return []wp.SitemapPost{
				{Slug: "kitchen-remodel", Modified: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)},
				{Slug: "bathroom-ideas"},
			}, nil
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/sitemap.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if got := strings.Count(body, "<loc>"); got != 3 {
		t.Fatalf("expected index plus two posts, got %d locs: %s", got, body)
	}
	if !strings.Contains(body, "<loc>https://cloudrenovation.ca/blog</loc>") {
		t.Fatalf("index entry missing: %s", body)
	}
	if !strings.Contains(body, "<loc>https://cloudrenovation.ca/blog/kitchen-remodel</loc>") {
		t.Fatalf("post entry missing: %s", body)
	}
	if !strings.Contains(body, "<changefreq>weekly</changefreq>") || !strings.Contains(body, "<priority>0.7</priority>") {
		t.Fatalf("post entry attributes missing: %s", body)
	}
}

func TestSitemapDegradesToIndexOnly(t *testing.T) {
	svc := &stubService{
		sitemapPosts: func(ctx context.Context, first int) ([]wp.SitemapPost, error) {
			return nil, errors.New("upstream down")
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/sitemap.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.Count(rec.Body.String(), "<loc>"); got != 1 {
		t.Fatalf("expected index-only sitemap, got %d locs", got)
	}
}

func TestFeedRendersItems(t *testing.T) {
	svc := &stubService{
		posts: func(ctx context.Context, first int, after string) ([]wp.Post, wp.PageInfo, error) {
			return []wp.Post{samplePost("kitchen-remodel")}, wp.PageInfo{}, nil
		},
	}
	a := newTestApp(t, svc)

	rec := doRequest(a, http.MethodGet, "/blog/feed.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Kitchen Remodel Guide</title>") {
		t.Fatalf("item title missing: %s", body)
	}
	if !strings.Contains(body, "<link>https://cloudrenovation.ca/blog/kitchen-remodel</link>") {
		t.Fatalf("item link missing: %s", body)
	}
}

func TestRobots(t *testing.T) {
	a := newTestApp(t, &stubService{})

	rec := doRequest(a, http.MethodGet, "/robots.txt", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
		"Disallow: /admin/",
		"Disallow: /*.json$",
		"Disallow: /*?*",
		"Sitemap: https://cloudrenovation.ca/blog/sitemap.xml",
		"Host: https://cloudrenovation.ca",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("robots.txt missing %q:\n%s", want, body)
		}
	}
}

func TestRootRedirectsToListing(t *testing.T) {
	a := newTestApp(t, &stubService{})

	rec := doRequest(a, http.MethodGet, "/", nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog" {
		t.Fatalf("expected redirect to /blog, got %q", loc)
	}
}

func TestPageCacheServesRepeatRequests(t *testing.T) {
	var fetches int
	svc := &stubService{
		postBySlug: func(ctx context.Context, slug string) (*wp.Post, error) {
			fetches++
			p := samplePost(slug)
			return &p, nil
		},
	}
	a := newTestApp(t, svc, WithPageCache(NewPageCache(time.Minute)))

	for i := 0; i < 3; i++ {
		rec := doRequest(a, http.MethodGet, "/blog/kitchen-remodel", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if fetches != 1 {
		t.Fatalf("expected a single upstream fetch for repeat requests, got %d", fetches)
	}

	a.Pages.Invalidate("/blog/kitchen-remodel")
	if rec := doRequest(a, http.MethodGet, "/blog/kitchen-remodel", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after invalidation, got %d", rec.Code)
	}
	if fetches != 2 {
		t.Fatalf("expected recompute after invalidation, got %d fetches", fetches)
	}
}

func TestPageCacheSkipsNotFound(t *testing.T) {
	a := newTestApp(t, &stubService{}, WithPageCache(NewPageCache(time.Minute)))

	doRequest(a, http.MethodGet, "/blog/missing", nil)
	if a.Pages.Len() != 0 {
		t.Fatalf("not-found responses must not be cached, got %d entries", a.Pages.Len())
	}
}

func TestPageCacheSkipsQueryStrings(t *testing.T) {
	var fetches int
	svc := &stubService{
		postsByCat: func(ctx context.Context, categorySlug string, first int, after string) ([]wp.Post, wp.PageInfo, error) {
			fetches++
			return nil, wp.PageInfo{}, nil
		},
	}
	a := newTestApp(t, svc, WithPageCache(NewPageCache(time.Minute)))

	doRequest(a, http.MethodGet, "/blog?category=kitchens", nil)
	doRequest(a, http.MethodGet, "/blog?category=kitchens", nil)
	if fetches != 2 {
		t.Fatalf("filtered listings must always recompute, got %d fetches", fetches)
	}
}
