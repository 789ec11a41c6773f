package s3

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPublicURL(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		key    string
		want   string
	}{
		{
			name:   "public base takes precedence",
			client: Client{publicBase: "https://cdn.example.com/files", endpoint: "localhost:9000", bucket: "uploads"},
			key:    "1756100000000-a1b2c3d4e.png",
			want:   "https://cdn.example.com/files/1756100000000-a1b2c3d4e.png",
		},
		{
			name:   "plain endpoint over http",
			client: Client{endpoint: "localhost:9000", bucket: "uploads"},
			key:    "1756100000000-a1b2c3d4e.png",
			want:   "http://localhost:9000/uploads/1756100000000-a1b2c3d4e.png",
		},
		{
			name:   "ssl endpoint over https",
			client: Client{endpoint: "storage.example.com", bucket: "uploads", useSSL: true},
			key:    "k.pdf",
			want:   "https://storage.example.com/uploads/k.pdf",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.client.GetPublicURL(tt.key))
		})
	}
}

func TestPublicReadPolicy(t *testing.T) {
	raw := publicReadPolicy("uploads")

	var policy struct {
		Version   string
		Statement []struct {
			Effect    string
			Principal string
			Action    string
			Resource  string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &policy), "policy must be valid JSON")

	assert.Equal(t, "2012-10-17", policy.Version)
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Equal(t, "s3:GetObject", policy.Statement[0].Action)
	assert.Equal(t, "arn:aws:s3:::uploads/*", policy.Statement[0].Resource)
}
