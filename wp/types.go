package wp

import (
	"bytes"
	"encoding/json"
)

// envelope is the GraphQL response wrapper.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// PageInfo carries cursor pagination state for listing queries.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// rawPost is the wire shape of a post. The upstream wraps some fields
// in nesting indirections (author/featuredImage in {node: ...},
// categories/tags in {nodes: [...]}) depending on the query; the
// wrapper types below absorb both forms so the rest of the package
// only ever sees the direct shape.
type rawPost struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt"`
	Date          string      `json:"date"`
	Modified      string      `json:"modified"`
	Status        string      `json:"status"`
	Author        *authorNode `json:"author"`
	FeaturedImage *imageNode  `json:"featuredImage"`
	Categories    termList    `json:"categories"`
	Tags          termList    `json:"tags"`
	Seo           *rawSeo     `json:"seo"`
}

type rawAuthor struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Avatar      *rawAvatar `json:"avatar"`
	Description string     `json:"description"`
}

type rawAvatar struct {
	URL string `json:"url"`
}

type rawImage struct {
	ID           string           `json:"id"`
	SourceURL    string           `json:"sourceUrl"`
	AltText      string           `json:"altText"`
	Caption      string           `json:"caption"`
	MediaDetails *rawMediaDetails `json:"mediaDetails"`
}

type rawMediaDetails struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type rawTerm struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type rawSeo struct {
	Title                string       `json:"title"`
	MetaDesc             string       `json:"metaDesc"`
	Canonical            string       `json:"canonical"`
	OpengraphTitle       string       `json:"opengraphTitle"`
	OpengraphDescription string       `json:"opengraphDescription"`
	OpengraphImage       *rawSeoImage `json:"opengraphImage"`
	TwitterTitle         string       `json:"twitterTitle"`
	TwitterDescription   string       `json:"twitterDescription"`
	TwitterImage         *rawSeoImage `json:"twitterImage"`
	Schema               *rawSchema   `json:"schema"`
	Focuskw              string       `json:"focuskw"`
	MetaRobotsNoindex    bool         `json:"metaRobotsNoindex"`
	MetaRobotsNofollow   bool         `json:"metaRobotsNofollow"`
}

type rawSeoImage struct {
	SourceURL    string           `json:"sourceUrl"`
	MediaDetails *rawMediaDetails `json:"mediaDetails"`
}

type rawSchema struct {
	Raw string `json:"raw"`
}

// authorNode accepts either a direct author object or the upstream's
// {node: {...}} indirection.
type authorNode struct {
	rawAuthor
}

func (a *authorNode) UnmarshalJSON(b []byte) error {
	var probe struct {
		Node json.RawMessage `json:"node"`
	}
	if err := json.Unmarshal(b, &probe); err == nil && probe.Node != nil {
		b = probe.Node
	}
	return json.Unmarshal(b, &a.rawAuthor)
}

// imageNode accepts either a direct image object or {node: {...}}.
type imageNode struct {
	rawImage
}

func (i *imageNode) UnmarshalJSON(b []byte) error {
	var probe struct {
		Node json.RawMessage `json:"node"`
	}
	if err := json.Unmarshal(b, &probe); err == nil && probe.Node != nil {
		b = probe.Node
	}
	return json.Unmarshal(b, &i.rawImage)
}

// termList accepts either a direct array of terms or the upstream's
// {nodes: [...]} envelope. Absent or null decodes to an empty list.
type termList []rawTerm

func (l *termList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, (*[]rawTerm)(l))
	}
	var wrapped struct {
		Nodes []rawTerm `json:"nodes"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Nodes
	return nil
}

// rawSitemapPost is the lightweight sitemap projection.
type rawSitemapPost struct {
	Slug     string `json:"slug"`
	Modified string `json:"modified"`
}
