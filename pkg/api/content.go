package api

import (
	"context"
	"fmt"
	"net/http"
)

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required"`
}

// ListBlogPosts fetches the blog index.
func (c *Client) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	var out struct {
		envelope
		Posts []BlogPost `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/blog", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// GetBlogPost fetches one post with its body.
func (c *Client) GetBlogPost(ctx context.Context, id int64) (*BlogPost, error) {
	var out struct {
		envelope
		Post BlogPost `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/blog/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// SubmitContact posts the contact form.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/contact", req, nil)
}

// SiteSettings fetches public site configuration.
func (c *Client) SiteSettings(ctx context.Context) (*SiteSettings, error) {
	var out struct {
		envelope
		Settings SiteSettings `json:"settings"`
	}
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out.Settings, nil
}
