package devto

import (
	"context"
	"net/http"

	"git.home.luguber.info/inful/mdpublish/internal/foundation"
)

const myArticlesEndpoint = "/api/articles/me"

// Article is an article owned by the authenticated user as returned by
// GET /api/articles/me. Only the fields the publisher needs are decoded.
type Article struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	URL       string `json:"url,omitempty"`
	Published bool   `json:"published"`
}

// ListMyArticles fetches the caller's articles with a single request. The
// decoded body is treated as the complete set; no pagination is attempted.
func (c *Client) ListMyArticles(ctx context.Context) ([]Article, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, myArticlesEndpoint)
	if err != nil {
		return nil, err
	}

	var articles []Article
	if err := c.DoRequest(req, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// FindByTitle returns the first article whose title equals title exactly.
// The comparison is case-sensitive.
func FindByTitle(articles []Article, title string) foundation.Option[Article] {
	for _, a := range articles {
		if a.Title == title {
			return foundation.Some(a)
		}
	}
	return foundation.None[Article]()
}
