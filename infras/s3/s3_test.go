package s3

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"courtbook/config"
	"courtbook/infras/otel/mocks"
)

func newTestStorage(publicDomain string) *s3Impl {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "courtbook"
	cfg.External.S3.APIEndpoint = "https://storage.example.com/"
	cfg.External.S3.PublicDomain = publicDomain
	cfg.External.S3.Region = "auto"

	return New(cfg, mocks.NewOtel()).(*s3Impl)
}

func TestPublicURLRoundTrip(t *testing.T) {
	tests := []struct {
		name         string
		publicDomain string
		wantURL      string
	}{
		{
			name:         "public domain",
			publicDomain: "https://cdn.example.com",
			wantURL:      "https://cdn.example.com/court-images/a1.png",
		},
		{
			name:    "api endpoint",
			wantURL: "https://storage.example.com/courtbook/court-images/a1.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newTestStorage(tt.publicDomain)

			url := storage.publicURL("courtbook", "court-images/a1.png")

			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, "a1.png", storage.GetObjectNameFromURL("", url))
		})
	}
}

func TestGetObjectNameFromURL_Foreign(t *testing.T) {
	storage := newTestStorage("https://cdn.example.com")

	assert.Empty(t, storage.GetObjectNameFromURL("courtbook", "https://elsewhere.example.com/court-images/a1.png"))
	assert.Empty(t, storage.GetObjectNameFromURL("courtbook", "https://cdn.example.com/"))
}

func TestContentType(t *testing.T) {
	withHeader := &multipart.FileHeader{Filename: "court.bin", Header: textproto.MIMEHeader{"Content-Type": {"image/webp"}}}
	byExtension := &multipart.FileHeader{Filename: "court.png", Header: textproto.MIMEHeader{}}
	unknown := &multipart.FileHeader{Filename: "court", Header: textproto.MIMEHeader{}}

	assert.Equal(t, "image/webp", contentType(withHeader))
	assert.Equal(t, "image/png", contentType(byExtension))
	assert.Equal(t, defaultContentType, contentType(unknown))
}
