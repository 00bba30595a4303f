// Package redis wraps the go-redis client for the shared operating-state
// store. The kiosk frontend writes the same keys, so connectivity problems
// here degrade the monitor's view of who is on duty.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client is a connected go-redis client with a health probe for the ops
// readiness endpoint.
type Client struct {
	*redis.Client
}

// New connects to the URL and verifies the connection with a ping. An empty
// URL means redis is not configured and New returns nil, nil so the caller
// can fall back to the in-memory store.
func New(url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection still answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
