package seo

import (
	"encoding/json"
	"time"

	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// ArticleJSONLD returns the structured-data document for a post. When
// the upstream SEO plugin supplies its own schema it is returned
// verbatim, unmodified; otherwise a minimal Article document is
// synthesized from the normalized post.
func ArticleJSONLD(post wp.Post, site Site) string {
	if post.Seo != nil && post.Seo.Schema != "" {
		return post.Seo.Schema
	}

	postURL := PostURL(site.BaseURL, post.Slug)
	authorName := site.FallbackAuthor
	if post.Author != nil && post.Author.Name != "" {
		authorName = post.Author.Name
	}

	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.Date.Format(time.RFC3339),
		"dateModified":  post.Modified.Format(time.RFC3339),
		"author": map[string]string{
			"@type": "Person",
			"name":  authorName,
		},
		"publisher": map[string]interface{}{
			"@type": "Organization",
			"name":  site.Name,
			"logo": map[string]string{
				"@type": "ImageObject",
				"url":   site.LogoURL,
			},
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"url": postURL,
	}
	if post.FeaturedImage != nil {
		data["image"] = post.FeaturedImage.URL
	}

	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BreadcrumbJSONLD returns the Home -> Blog -> post trail. It is always
// synthesized, independent of whether the post supplies its own schema.
func BreadcrumbJSONLD(post wp.Post, site Site) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BreadcrumbList",
		"itemListElement": []map[string]interface{}{
			{
				"@type":    "ListItem",
				"position": 1,
				"name":     "Home",
				"item":     site.BaseURL,
			},
			{
				"@type":    "ListItem",
				"position": 2,
				"name":     "Blog",
				"item":     IndexURL(site.BaseURL),
			},
			{
				"@type":    "ListItem",
				"position": 3,
				"name":     post.Title,
				"item":     PostURL(site.BaseURL, post.Slug),
			},
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WebsiteJSONLD returns the WebSite document for the listing page.
func WebsiteJSONLD(site Site) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         site.BaseURL,
		"description": site.Description,
	}
	if site.FallbackAuthor != "" {
		data["author"] = map[string]string{
			"@type": "Organization",
			"name":  site.FallbackAuthor,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
