package blog

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bradleydoering/cloudrenovation-blog/seo"
	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// renderSitemap writes the urlset: the listing index (daily, 0.8)
// followed by one entry per published post (weekly, 0.7). With no
// posts it degrades to the index entry alone.
func (a *App) renderSitemap(c echo.Context, posts []wp.SitemapPost) error {
	urls := []sitemapURL{
		{
			Loc:        seo.IndexURL(a.Config.URL),
			LastMod:    time.Now().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   0.8,
		},
	}
	for _, p := range posts {
		entry := sitemapURL{
			Loc:        seo.PostURL(a.Config.URL, p.Slug),
			ChangeFreq: "weekly",
			Priority:   0.7,
		}
		if !p.Modified.IsZero() {
			entry.LastMod = p.Modified.Format(time.RFC3339)
		}
		urls = append(urls, entry)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
