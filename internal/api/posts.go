package api

import (
	"context"
	"fmt"
)

// CreatePost publishes a new post. It is not retried.
func (c *Client) CreatePost(ctx context.Context, content string) (*CreatePostResponse, error) {
	var resp CreatePostResponse
	if err := c.Post(ctx, "/create_post", CreatePostRequest{Content: content}, &resp); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return &resp, nil
}
