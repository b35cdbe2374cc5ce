package wp

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Service exposes the query catalog as typed operations returning
// normalized posts. It owns no fallback policy: every error from the
// client is passed through so call sites can decide whether to degrade.
type Service struct {
	client *Client
	log    *slog.Logger
}

// NewService wraps a client. A nil logger falls back to slog.Default.
func NewService(client *Client, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, log: log}
}

type postsConnection struct {
	Nodes    []rawPost `json:"nodes"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Posts returns a page of published posts, newest first.
func (s *Service) Posts(ctx context.Context, first int, after string) ([]Post, PageInfo, error) {
	vars := map[string]any{"first": first}
	if after != "" {
		vars["after"] = after
	}
	var out struct {
		Posts postsConnection `json:"posts"`
	}
	if err := s.client.Execute(ctx, QueryAllPosts, vars, &out); err != nil {
		s.log.Error("fetch posts failed", "query", QueryAllPosts.Name, "first", first, "error", err)
		return nil, PageInfo{}, err
	}
	return normalizeAll(out.Posts.Nodes), out.Posts.PageInfo, nil
}

// PostsByCategory returns a page of published posts in a category.
func (s *Service) PostsByCategory(ctx context.Context, categorySlug string, first int, after string) ([]Post, PageInfo, error) {
	vars := map[string]any{"categorySlug": categorySlug, "first": first}
	if after != "" {
		vars["after"] = after
	}
	var out struct {
		Posts postsConnection `json:"posts"`
	}
	if err := s.client.Execute(ctx, QueryPostsByCategory, vars, &out); err != nil {
		s.log.Error("fetch posts by category failed", "query", QueryPostsByCategory.Name, "category", categorySlug, "error", err)
		return nil, PageInfo{}, err
	}
	return normalizeAll(out.Posts.Nodes), out.Posts.PageInfo, nil
}

// PostBySlug returns the single published post with the given slug, or
// ErrNotFound when the upstream matches nothing.
func (s *Service) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	var out struct {
		Post json.RawMessage `json:"post"`
	}
	if err := s.client.Execute(ctx, QueryPostBySlug, map[string]any{"slug": slug}, &out); err != nil {
		s.log.Error("fetch post failed", "query", QueryPostBySlug.Name, "slug", slug, "error", err)
		return nil, err
	}
	if len(out.Post) == 0 || string(out.Post) == "null" {
		return nil, ErrNotFound
	}
	var raw rawPost
	if err := json.Unmarshal(out.Post, &raw); err != nil {
		return nil, &ProtocolError{Query: QueryPostBySlug.Name, Err: err}
	}
	post := normalizePost(raw)
	return &post, nil
}

// RecentPosts returns recent published posts, excluding the given IDs.
func (s *Service) RecentPosts(ctx context.Context, first int, excludeIDs ...string) ([]Post, error) {
	vars := map[string]any{"first": first}
	if len(excludeIDs) > 0 {
		vars["notIn"] = excludeIDs
	}
	var out struct {
		Posts struct {
			Nodes []rawPost `json:"nodes"`
		} `json:"posts"`
	}
	if err := s.client.Execute(ctx, QueryRecentPosts, vars, &out); err != nil {
		s.log.Error("fetch recent posts failed", "query", QueryRecentPosts.Name, "error", err)
		return nil, err
	}
	return normalizeAll(out.Posts.Nodes), nil
}

// SitemapPosts returns the slug+modified projection for the sitemap.
func (s *Service) SitemapPosts(ctx context.Context, first int) ([]SitemapPost, error) {
	var out struct {
		Posts struct {
			Nodes []rawSitemapPost `json:"nodes"`
		} `json:"posts"`
	}
	if err := s.client.Execute(ctx, QueryPostsSitemap, map[string]any{"first": first}, &out); err != nil {
		s.log.Error("fetch sitemap posts failed", "query", QueryPostsSitemap.Name, "error", err)
		return nil, err
	}
	posts := make([]SitemapPost, 0, len(out.Posts.Nodes))
	for _, raw := range out.Posts.Nodes {
		posts = append(posts, normalizeSitemapPost(raw))
	}
	return posts, nil
}

// Categories returns all non-empty categories.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories struct {
			Nodes []rawTerm `json:"nodes"`
		} `json:"categories"`
	}
	if err := s.client.Execute(ctx, QueryCategories, nil, &out); err != nil {
		s.log.Error("fetch categories failed", "query", QueryCategories.Name, "error", err)
		return nil, err
	}
	cats := make([]Category, 0, len(out.Categories.Nodes))
	for _, raw := range out.Categories.Nodes {
		cats = append(cats, Category(raw))
	}
	return cats, nil
}

func normalizeAll(nodes []rawPost) []Post {
	posts := make([]Post, 0, len(nodes))
	for _, raw := range nodes {
		posts = append(posts, normalizePost(raw))
	}
	return posts
}
