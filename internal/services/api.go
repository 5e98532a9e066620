package services

import (
	"context"

	"admin_console/internal/apiclient"
)

// API - то, что сервисам нужно от клиента удаленного API
type API interface {
	GetJSON(ctx context.Context, path string, out interface{}) error
	PostJSON(ctx context.Context, path string, in, out interface{}) error
	PutJSON(ctx context.Context, path string, in, out interface{}) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, file apiclient.FilePart, out interface{}) error
	GetBlob(ctx context.Context, path string) (*apiclient.Blob, error)
	ResolveURL(path string) string
}

var _ API = (*apiclient.Client)(nil)
