package wp

import "time"

// Status is the publication state of a post.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusPrivate   Status = "private"
)

// Post is the normalized content item every downstream component
// consumes. No wrapper indirection from the wire format survives here:
// author and image are direct references, collections are plain slices
// (empty, never nil-vs-absent ambiguous), and absent optional entities
// are nil pointers rather than placeholder objects.
type Post struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	Date          time.Time    `json:"date"`
	Modified      time.Time    `json:"modified"`
	Status        Status       `json:"status"`
	Author        *Author      `json:"author,omitempty"`
	FeaturedImage *Image       `json:"featuredImage,omitempty"`
	Categories    []Category   `json:"categories"`
	Tags          []Tag        `json:"tags"`
	Seo           *SeoOverride `json:"seo,omitempty"`
}

// Author is referenced, never owned, by a Post.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Image describes a fetched image. Immutable once normalized.
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Category groups posts many-to-many; referenced by slug for filtering.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// Tag labels posts many-to-many.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// SeoOverride carries per-post metadata supplied by the upstream SEO
// plugin. Present fields take precedence over computed defaults;
// Schema, when set, is the provider's JSON-LD document kept verbatim.
type SeoOverride struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	Canonical          string `json:"canonical,omitempty"`
	OGTitle            string `json:"ogTitle,omitempty"`
	OGDescription      string `json:"ogDescription,omitempty"`
	OGImage            *Image `json:"ogImage,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty"`
	TwitterImage       *Image `json:"twitterImage,omitempty"`
	Schema             string `json:"schema,omitempty"`
	FocusKeyword       string `json:"focusKeyword,omitempty"`
	NoIndex            bool   `json:"noIndex,omitempty"`
	NoFollow           bool   `json:"noFollow,omitempty"`
}

// SitemapPost is the slug+modified projection used for sitemaps.
type SitemapPost struct {
	Slug     string    `json:"slug"`
	Modified time.Time `json:"modified"`
}
