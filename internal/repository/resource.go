package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Resource is the repository for one REST collection, e.g. /students.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a client to a resource name such as "students".
func NewResource[T any](client *Client, resource string) *Resource[T] {
	return &Resource[T]{
		client: client,
		path:   "/" + strings.Trim(resource, "/"),
	}
}

// Path returns the collection path, e.g. "/students".
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// ListActive fetches GET /{resource}.
func (r *Resource[T]) ListActive(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path)
}

// ListInactive fetches GET /{resource}/inactive.
func (r *Resource[T]) ListInactive(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path+"/inactive")
}

func (r *Resource[T]) list(ctx context.Context, path string) ([]T, error) {
	resp, err := r.client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](resp.body)
	if err != nil {
		r.client.logger.Warn().
			Str("path", path).
			Err(err).
			Msg("list response did not contain a sequence, treating as empty")
	}
	return items, err
}

// Get fetches GET /{resource}/{id}.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	resp, err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](resp.body)
}

// Create sends POST /{resource}.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	resp, err := r.client.do(ctx, http.MethodPost, r.path, item)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](resp.body)
}

// Update sends PUT /{resource}/{id}.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	resp, err := r.client.do(ctx, http.MethodPut, r.itemPath(id), item)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](resp.body)
}

// SoftDelete sends DELETE /{resource}/{id}. The response body is ignored.
func (r *Resource[T]) SoftDelete(ctx context.Context, id string) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil)
	return err
}

// Restore sends PATCH /{resource}/{id}/restore. An empty or non-JSON body,
// or one without a data object, is a success with the zero value.
func (r *Resource[T]) Restore(ctx context.Context, id string) (T, error) {
	var zero T
	resp, err := r.client.do(ctx, http.MethodPatch, r.itemPath(id)+"/restore", nil)
	if err != nil {
		return zero, err
	}

	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 || !json.Valid(body) {
		return zero, nil
	}
	item, err := decodeOne[T](body)
	if errors.Is(err, ErrEnvelopeShape) {
		return zero, nil
	}
	return item, err
}
