package wp

import "fmt"

// VarKind is the wire type a query variable must carry.
type VarKind int

const (
	VarString VarKind = iota
	VarInt
	VarStringList
)

func (k VarKind) String() string {
	switch k {
	case VarString:
		return "string"
	case VarInt:
		return "int"
	case VarStringList:
		return "[]string"
	}
	return "unknown"
}

// VarSpec declares one variable a query accepts.
type VarSpec struct {
	Name     string
	Kind     VarKind
	Required bool
}

// Query is one entry in the fixed catalog: a GraphQL document plus the
// schema its variables must satisfy. Variables are checked before any
// network round-trip so malformed calls fail fast.
type Query struct {
	Name string
	Doc  string
	Vars []VarSpec
}

// Validate checks vars structurally against the query's schema:
// required variables present, no unknown variables, right Go types.
func (q Query) Validate(vars map[string]any) error {
	for _, spec := range q.Vars {
		v, ok := vars[spec.Name]
		if !ok {
			if spec.Required {
				return fmt.Errorf("wp: query %s: missing required variable %q", q.Name, spec.Name)
			}
			continue
		}
		switch spec.Kind {
		case VarString:
			if _, ok := v.(string); !ok {
				return fmt.Errorf("wp: query %s: variable %q must be a string", q.Name, spec.Name)
			}
		case VarInt:
			if _, ok := v.(int); !ok {
				return fmt.Errorf("wp: query %s: variable %q must be an int", q.Name, spec.Name)
			}
		case VarStringList:
			if _, ok := v.([]string); !ok {
				return fmt.Errorf("wp: query %s: variable %q must be a []string", q.Name, spec.Name)
			}
		}
	}
	for name := range vars {
		if !q.hasVar(name) {
			return fmt.Errorf("wp: query %s: unknown variable %q", q.Name, name)
		}
	}
	return nil
}

func (q Query) hasVar(name string) bool {
	for _, spec := range q.Vars {
		if spec.Name == name {
			return true
		}
	}
	return false
}

const postFragment = `
  fragment PostFields on Post {
    id
    title
    slug
    content
    excerpt
    date
    modified
    status
    author {
      node {
        id
        name
        slug
        avatar {
          url
        }
        description
      }
    }
    featuredImage {
      node {
        id
        sourceUrl
        altText
        caption
        mediaDetails {
          width
          height
        }
      }
    }
    categories {
      nodes {
        id
        name
        slug
        description
        count
      }
    }
    tags {
      nodes {
        id
        name
        slug
        description
        count
      }
    }
    seo {
      title
      metaDesc
      canonical
      opengraphTitle
      opengraphDescription
      opengraphImage {
        sourceUrl
        mediaDetails {
          width
          height
        }
      }
      twitterTitle
      twitterDescription
      twitterImage {
        sourceUrl
      }
      schema {
        raw
      }
      focuskw
      metaRobotsNoindex
      metaRobotsNofollow
    }
  }
`

// QueryAllPosts fetches a page of published posts, newest first.
var QueryAllPosts = Query{
	Name: "GetAllPosts",
	Doc: `
  query GetAllPosts($first: Int = 10, $after: String) {
    posts(first: $first, after: $after, where: {status: PUBLISH}) {
      nodes {
        ...PostFields
      }
      pageInfo {
        hasNextPage
        hasPreviousPage
        startCursor
        endCursor
      }
    }
  }
` + postFragment,
	Vars: []VarSpec{
		{Name: "first", Kind: VarInt, Required: true},
		{Name: "after", Kind: VarString},
	},
}

// QueryPostBySlug fetches a single post by its slug, or null.
var QueryPostBySlug = Query{
	Name: "GetPostBySlug",
	Doc: `
  query GetPostBySlug($slug: ID!) {
    post(id: $slug, idType: SLUG) {
      ...PostFields
    }
  }
` + postFragment,
	Vars: []VarSpec{
		{Name: "slug", Kind: VarString, Required: true},
	},
}

// QueryPostsByCategory fetches a page of published posts in a category.
var QueryPostsByCategory = Query{
	Name: "GetPostsByCategory",
	Doc: `
  query GetPostsByCategory($categorySlug: String!, $first: Int = 10, $after: String) {
    posts(first: $first, after: $after, where: {status: PUBLISH, categoryName: $categorySlug}) {
      nodes {
        ...PostFields
      }
      pageInfo {
        hasNextPage
        hasPreviousPage
        startCursor
        endCursor
      }
    }
  }
` + postFragment,
	Vars: []VarSpec{
		{Name: "categorySlug", Kind: VarString, Required: true},
		{Name: "first", Kind: VarInt, Required: true},
		{Name: "after", Kind: VarString},
	},
}

// QueryRecentPosts fetches recent published posts, excluding the given
// IDs. Used for the related-posts section on detail pages.
var QueryRecentPosts = Query{
	Name: "GetRecentPosts",
	Doc: `
  query GetRecentPosts($first: Int = 5, $notIn: [ID]) {
    posts(first: $first, where: {status: PUBLISH, notIn: $notIn}) {
      nodes {
        id
        title
        slug
        excerpt
        date
        featuredImage {
          node {
            id
            sourceUrl
            altText
            mediaDetails {
              width
              height
            }
          }
        }
        categories {
          nodes {
            name
            slug
          }
        }
      }
    }
  }
`,
	Vars: []VarSpec{
		{Name: "first", Kind: VarInt, Required: true},
		{Name: "notIn", Kind: VarStringList},
	},
}

// QueryPostsSitemap is the lightweight slug+modified projection used
// for sitemap generation. No body or SEO fields are requested since
// the result set can be large.
var QueryPostsSitemap = Query{
	Name: "GetPostsSitemap",
	Doc: `
  query GetPostsSitemap($first: Int = 100) {
    posts(first: $first, where: {status: PUBLISH}) {
      nodes {
        slug
        modified
      }
    }
  }
`,
	Vars: []VarSpec{
		{Name: "first", Kind: VarInt, Required: true},
	},
}

// QueryCategories fetches all non-empty categories.
var QueryCategories = Query{
	Name: "GetCategories",
	Doc: `
  query GetCategories {
    categories(where: {hideEmpty: true}) {
      nodes {
        id
        name
        slug
        description
        count
      }
    }
  }
`,
}
