package uploader

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/pkg/config"
)

func TestCloudinarySignSortsParams(t *testing.T) {
	c := NewCloudinary(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	}, nil)

	sig := c.sign(map[string]string{
		"timestamp": "1700000000",
		"folder":    "blogs",
	})
	assert.Equal(t, "d0b702704807cab3b99d5c7400f532feff436a8d", sig)
}

func TestCloudinaryUploadRequiresCredentials(t *testing.T) {
	c := NewCloudinary(config.CloudinaryConfig{}, nil)

	_, err := c.Upload(context.Background(), &multipart.FileHeader{Filename: "a.png"}, "blogs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}
