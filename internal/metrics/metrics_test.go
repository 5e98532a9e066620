package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"admin/users/696753c2f2bf8d805e0e7699", "/admin/users/:id"},
		{"/admin/users/block/696753c2f2bf8d805e0e7699", "/admin/users/block/:id"},
		{"api/content/get", "/api/content/get"},
		{"admin/projects/42?x=1", "/admin/projects/:id"},
		{"admin/projects/2b1f3c4d-1111-2222-3333-444455556666", "/admin/projects/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEndpoint(tt.path))
		})
	}
}
