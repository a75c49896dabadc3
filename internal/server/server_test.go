package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadousow/clipsentry/internal/config"
)

func TestAllowedOriginsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			AllowedOrigins: []string{"https://dashboard.example.com"},
		},
	}
	assert.Equal(t, []string{"https://dashboard.example.com"}, allowedOrigins(cfg))
}

func TestAllowedOriginsFallback(t *testing.T) {
	origins := allowedOrigins(&config.Config{})
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, origins)
}
