// Package seo derives render-ready page metadata from normalized
// content. Everything here is a pure function of its inputs; metadata
// is computed fresh per request and never persisted.
package seo

import (
	"strings"

	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// Site holds the site-level values the fallback chains bottom out on.
type Site struct {
	BaseURL        string // canonical origin, no trailing slash
	Name           string
	Description    string
	DefaultImage   string // absolute URL of the default social card image
	LogoURL        string // absolute URL of the publisher logo
	FallbackAuthor string // author/publisher name when a post has none
}

// Metadata is the fully resolved metadata for one page.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	OpenGraph   OpenGraph
	Twitter     Twitter
	Robots      Robots
}

// OpenGraph is the og:* block.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Images      []ImageMeta
	Type        string // "website" or "article"
}

// ImageMeta describes one social card image.
type ImageMeta struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// Twitter is the twitter:* card block.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
}

// Robots carries the index/follow directives. Both default to true and
// are suppressed only by an explicit override flag.
type Robots struct {
	Index  bool
	Follow bool
}

// A candidate is one (predicate, producer) step of a fallback chain.
// Chains are evaluated first-match so the precedence order per field
// stays auditable and testable on its own.
type candidate func() (string, bool)

func chain(candidates ...candidate) string {
	for _, c := range candidates {
		if v, ok := c(); ok {
			return v
		}
	}
	return ""
}

func given(v string) candidate {
	return func() (string, bool) { return v, v != "" }
}

func always(v string) candidate {
	return func() (string, bool) { return v, true }
}

// PostURL is the canonical detail-page URL for a slug.
func PostURL(baseURL, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + "/blog/" + slug
}

// IndexURL is the canonical listing-page URL.
func IndexURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/blog"
}

// Derive resolves the metadata for a post detail page. Per-field
// priority: explicit override, then the post's own content, then the
// site-level default.
func Derive(post wp.Post, site Site) Metadata {
	var o wp.SeoOverride
	if post.Seo != nil {
		o = *post.Seo
	}
	postURL := PostURL(site.BaseURL, post.Slug)

	title := chain(given(o.Title), always(post.Title))
	description := chain(given(o.Description), given(post.Excerpt), always(""))
	image := cardImage(o, post, site)

	return Metadata{
		Title:       title,
		Description: description,
		Canonical:   chain(given(o.Canonical), always(postURL)),
		OpenGraph: OpenGraph{
			Title:       chain(given(o.OGTitle), always(title)),
			Description: chain(given(o.OGDescription), always(description)),
			URL:         postURL,
			SiteName:    site.Name,
			Images:      []ImageMeta{image},
			Type:        "article",
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       chain(given(o.TwitterTitle), always(title)),
			Description: chain(given(o.TwitterDescription), always(description)),
			Images: []string{chain(
				func() (string, bool) {
					if o.TwitterImage != nil {
						return o.TwitterImage.URL, o.TwitterImage.URL != ""
					}
					return "", false
				},
				always(image.URL),
			)},
		},
		Robots: Robots{
			Index:  !o.NoIndex,
			Follow: !o.NoFollow,
		},
	}
}

// cardImage resolves the social card image: override, then the post's
// featured image, then the site default. Dimensions fall back to the
// conventional 1200x630 card size.
func cardImage(o wp.SeoOverride, post wp.Post, site Site) ImageMeta {
	img := ImageMeta{Width: 1200, Height: 630, Alt: post.Title}

	switch {
	case o.OGImage != nil && o.OGImage.URL != "":
		img.URL = o.OGImage.URL
		if o.OGImage.Width > 0 {
			img.Width = o.OGImage.Width
		}
		if o.OGImage.Height > 0 {
			img.Height = o.OGImage.Height
		}
	case post.FeaturedImage != nil && post.FeaturedImage.URL != "":
		img.URL = post.FeaturedImage.URL
		if post.FeaturedImage.Width > 0 {
			img.Width = post.FeaturedImage.Width
		}
		if post.FeaturedImage.Height > 0 {
			img.Height = post.FeaturedImage.Height
		}
		if post.FeaturedImage.Alt != "" {
			img.Alt = post.FeaturedImage.Alt
		}
	default:
		img.URL = site.DefaultImage
	}
	return img
}

// IndexMetadata is the metadata for the blog listing page.
func IndexMetadata(site Site) Metadata {
	indexURL := IndexURL(site.BaseURL)
	title := site.Name + " Blog"
	return Metadata{
		Title:       title,
		Description: site.Description,
		Canonical:   indexURL,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: site.Description,
			URL:         indexURL,
			SiteName:    site.Name,
			Images:      []ImageMeta{{URL: site.DefaultImage, Width: 1200, Height: 630, Alt: title}},
			Type:        "website",
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: site.Description,
			Images:      []string{site.DefaultImage},
		},
		Robots: Robots{Index: true, Follow: true},
	}
}
