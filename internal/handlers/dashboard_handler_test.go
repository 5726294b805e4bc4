package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "10 MB", formatSize(10<<20))
	assert.Equal(t, "1.5 MB", formatSize(3<<19))
	assert.Equal(t, "512 KB", formatSize(512<<10))
	assert.Equal(t, "900 bytes", formatSize(900))
}

func TestSizeLimitMessage(t *testing.T) {
	h := NewDashboardHandler(nil, 256<<10)

	assert.Equal(t, "File size exceeds 256 KB limit", h.sizeLimitMessage())
}
