package kvgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// GatewayConfig holds settings shared by every route.
type GatewayConfig struct {
	// MaxPathLength caps request path length in bytes. Zero selects
	// DefaultMaxPathLength.
	MaxPathLength int
}

// Gateway resolves request paths to stored values.
type Gateway struct {
	reader        StoreReader
	maxPathLength int
}

// NewGateway creates a Gateway reading through reader.
func NewGateway(reader StoreReader, cfg GatewayConfig) (*Gateway, error) {
	if reader == nil {
		return nil, errors.New("new gateway: store reader is nil")
	}
	if cfg.MaxPathLength < 0 {
		return nil, fmt.Errorf("new gateway: invalid max path length: %d", cfg.MaxPathLength)
	}

	maxLen := cfg.MaxPathLength
	if maxLen == 0 {
		maxLen = DefaultMaxPathLength
	}

	return &Gateway{
		reader:        reader,
		maxPathLength: maxLen,
	}, nil
}

// MaxPathLength returns the effective path length cap.
func (g *Gateway) MaxPathLength() int {
	return g.maxPathLength
}

// Get looks up the final segment of rawPath in the route's store.
//
// Returns ErrPathTooLong for oversized paths, ErrNotFound when the key is
// absent, and the store reader's error otherwise.
func (g *Gateway) Get(ctx context.Context, route RouteConfig, rawPath string) (Object, error) {
	key, err := ResolveKey(rawPath, g.maxPathLength)
	if err != nil {
		return Object{}, err
	}

	slog.DebugContext(ctx, "lookup", "path", rawPath, "key", string(key), "store", route.StorePath, "bucket", route.Bucket)

	value, err := g.reader.Lookup(ctx, route, key)
	if err != nil {
		return Object{}, fmt.Errorf("get %q: %w", key, err)
	}

	return Object{
		ContentType: route.ContentType,
		Body:        value,
	}, nil
}
