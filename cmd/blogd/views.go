package main

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	blog "github.com/bradleydoering/cloudrenovation-blog"
	"github.com/bradleydoering/cloudrenovation-blog/seo"
	"github.com/bradleydoering/cloudrenovation-blog/wp"
)

// defaultViews provides plain built-in markup so the binary runs
// standalone. Deployments that own their design swap these out for
// generated templ components.
func defaultViews(cfg blog.SiteConfig) blog.ViewFuncs {
	return blog.ViewFuncs{
		Index: func(posts []wp.Post, categories []wp.Category, active string, meta seo.Metadata) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				writeHead(w, meta, "")
				fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(meta.Title))
				fmt.Fprint(w, "<ul>\n")
				for _, c := range categories {
					fmt.Fprintf(w, `<li><a href="/blog?category=%s">%s</a></li>`+"\n",
						html.EscapeString(c.Slug), html.EscapeString(c.Name))
				}
				fmt.Fprint(w, "</ul>\n")
				for _, p := range posts {
					fmt.Fprintf(w, `<article><h2><a href="/blog/%s">%s</a></h2><p>%s</p></article>`+"\n",
						html.EscapeString(p.Slug), html.EscapeString(p.Title), blog.Excerpt(p.Excerpt, 160))
				}
				_, err := fmt.Fprint(w, "</body></html>\n")
				return err
			})
		},
		Post: func(post wp.Post, related []wp.Post, meta seo.Metadata, articleLD, breadcrumbLD string) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				writeHead(w, meta, articleLD, breadcrumbLD)
				fmt.Fprintf(w, "<article><h1>%s</h1>\n%s\n</article>\n",
					html.EscapeString(post.Title), post.Content)
				if len(related) > 0 {
					fmt.Fprint(w, "<aside><h2>Related</h2><ul>\n")
					for _, p := range related {
						fmt.Fprintf(w, `<li><a href="/blog/%s">%s</a></li>`+"\n",
							html.EscapeString(p.Slug), html.EscapeString(p.Title))
					}
					fmt.Fprint(w, "</ul></aside>\n")
				}
				_, err := fmt.Fprint(w, "</body></html>\n")
				return err
			})
		},
		NotFound: func() templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := fmt.Fprint(w, "<!doctype html><html><body><h1>Not Found</h1></body></html>\n")
				return err
			})
		},
		ServerError: func() templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := fmt.Fprint(w, "<!doctype html><html><body><h1>Something went wrong</h1></body></html>\n")
				return err
			})
		},
	}
}

func writeHead(w io.Writer, meta seo.Metadata, jsonLD ...string) {
	fmt.Fprintf(w, "<!doctype html>\n<html><head><title>%s</title>\n", html.EscapeString(meta.Title))
	fmt.Fprintf(w, `<meta name="description" content="%s">`+"\n", html.EscapeString(meta.Description))
	fmt.Fprintf(w, `<link rel="canonical" href="%s">`+"\n", html.EscapeString(meta.Canonical))
	fmt.Fprintf(w, `<meta property="og:title" content="%s">`+"\n", html.EscapeString(meta.OpenGraph.Title))
	fmt.Fprintf(w, `<meta property="og:description" content="%s">`+"\n", html.EscapeString(meta.OpenGraph.Description))
	fmt.Fprintf(w, `<meta property="og:url" content="%s">`+"\n", html.EscapeString(meta.OpenGraph.URL))
	fmt.Fprintf(w, `<meta property="og:type" content="%s">`+"\n", meta.OpenGraph.Type)
	for _, img := range meta.OpenGraph.Images {
		fmt.Fprintf(w, `<meta property="og:image" content="%s">`+"\n", html.EscapeString(img.URL))
	}
	fmt.Fprintf(w, `<meta name="twitter:card" content="%s">`+"\n", meta.Twitter.Card)
	if !meta.Robots.Index || !meta.Robots.Follow {
		fmt.Fprintf(w, `<meta name="robots" content="%s">`+"\n", robotsContent(meta.Robots))
	}
	for _, doc := range jsonLD {
		if doc != "" {
			fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`+"\n", doc)
		}
	}
	fmt.Fprint(w, "</head><body>\n")
}

func robotsContent(r seo.Robots) string {
	index, follow := "index", "follow"
	if !r.Index {
		index = "noindex"
	}
	if !r.Follow {
		follow = "nofollow"
	}
	return index + ", " + follow
}
