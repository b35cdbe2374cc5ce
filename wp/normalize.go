package wp

import "time"

// WPGraphQL emits local datetimes without a zone offset.
const wpTimeLayout = "2006-01-02T15:04:05"

func parseWPTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(wpTimeLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

func normalizeStatus(s string) Status {
	switch s {
	case "PUBLISH", "publish", string(StatusPublished):
		return StatusPublished
	case "DRAFT", "draft":
		return StatusDraft
	case "PRIVATE", "private":
		return StatusPrivate
	}
	return StatusDraft
}

// normalizePost flattens a raw wire post into the canonical Post. It is
// total over the upstream's documented variance (wrapped or direct
// author/image, {nodes: ...} or direct term lists, absent optionals)
// and idempotent: re-normalizing an already-direct shape yields the
// same result. The raw input is never mutated.
func normalizePost(raw rawPost) Post {
	p := Post{
		ID:         raw.ID,
		Title:      raw.Title,
		Slug:       raw.Slug,
		Content:    raw.Content,
		Excerpt:    raw.Excerpt,
		Date:       parseWPTime(raw.Date),
		Modified:   parseWPTime(raw.Modified),
		Status:     normalizeStatus(raw.Status),
		Categories: make([]Category, 0, len(raw.Categories)),
		Tags:       make([]Tag, 0, len(raw.Tags)),
	}

	if raw.Author != nil && raw.Author.ID != "" {
		a := &Author{
			ID:   raw.Author.ID,
			Name: raw.Author.Name,
			Slug: raw.Author.Slug,
			Bio:  raw.Author.Description,
		}
		if raw.Author.Avatar != nil {
			a.AvatarURL = raw.Author.Avatar.URL
		}
		p.Author = a
	}

	// Absent image stays nil, never a placeholder. Alt text falls back
	// to the post title so consumers always have something to render.
	if raw.FeaturedImage != nil && raw.FeaturedImage.SourceURL != "" {
		img := &Image{
			URL:     raw.FeaturedImage.SourceURL,
			Alt:     raw.FeaturedImage.AltText,
			Caption: raw.FeaturedImage.Caption,
		}
		if img.Alt == "" {
			img.Alt = raw.Title
		}
		if md := raw.FeaturedImage.MediaDetails; md != nil {
			img.Width = md.Width
			img.Height = md.Height
		}
		p.FeaturedImage = img
	}

	for _, t := range raw.Categories {
		p.Categories = append(p.Categories, Category(t))
	}
	for _, t := range raw.Tags {
		p.Tags = append(p.Tags, Tag(t))
	}

	if raw.Seo != nil {
		p.Seo = normalizeSeo(raw.Seo)
	}

	return p
}

// normalizeSeo renames the provider's SEO fields into the stable
// internal override shape. The raw schema document, when supplied, is
// preserved verbatim for later reuse rather than re-derived.
func normalizeSeo(raw *rawSeo) *SeoOverride {
	o := &SeoOverride{
		Title:              raw.Title,
		Description:        raw.MetaDesc,
		Canonical:          raw.Canonical,
		OGTitle:            raw.OpengraphTitle,
		OGDescription:      raw.OpengraphDescription,
		TwitterTitle:       raw.TwitterTitle,
		TwitterDescription: raw.TwitterDescription,
		FocusKeyword:       raw.Focuskw,
		NoIndex:            raw.MetaRobotsNoindex,
		NoFollow:           raw.MetaRobotsNofollow,
	}
	if raw.Schema != nil {
		o.Schema = raw.Schema.Raw
	}
	if img := raw.OpengraphImage; img != nil && img.SourceURL != "" {
		o.OGImage = &Image{URL: img.SourceURL}
		if img.MediaDetails != nil {
			o.OGImage.Width = img.MediaDetails.Width
			o.OGImage.Height = img.MediaDetails.Height
		}
	}
	if img := raw.TwitterImage; img != nil && img.SourceURL != "" {
		o.TwitterImage = &Image{URL: img.SourceURL}
	}
	return o
}

func normalizeSitemapPost(raw rawSitemapPost) SitemapPost {
	return SitemapPost{
		Slug:     raw.Slug,
		Modified: parseWPTime(raw.Modified),
	}
}
