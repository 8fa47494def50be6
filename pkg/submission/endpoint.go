package submission

import (
	"context"
	"fmt"

	"github.com/goliatone/go-fiche/pkg/api"
)

// Endpoint accepts a built payload.
type Endpoint interface {
	Submit(ctx context.Context, p Payload) error
}

// EndpointFunc adapts a function to Endpoint.
type EndpointFunc func(ctx context.Context, p Payload) error

// Submit implements Endpoint.
func (fn EndpointFunc) Submit(ctx context.Context, p Payload) error {
	return fn(ctx, p)
}

// Poster is the slice of api.Client used by HTTPEndpoint.
type Poster interface {
	PostJSON(ctx context.Context, path string, body, out any) error
}

var _ Poster = (*api.Client)(nil)

// HTTPEndpoint posts payloads to the backend.
type HTTPEndpoint struct {
	client Poster
}

// NewHTTPEndpoint wraps an API client.
func NewHTTPEndpoint(client Poster) *HTTPEndpoint {
	return &HTTPEndpoint{client: client}
}

// Submit implements Endpoint.
func (h *HTTPEndpoint) Submit(ctx context.Context, p Payload) error {
	if err := h.client.PostJSON(ctx, RouteFormationPratiques, p, nil); err != nil {
		return fmt.Errorf("submission: post fiche: %w", err)
	}
	return nil
}
