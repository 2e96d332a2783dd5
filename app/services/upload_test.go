package services

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/reqid"
)

func TestUploadName(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "1700000000123_paneer-tikka.jpg", UploadName("Paneer Tikka.JPG", at))
	assert.Equal(t, "1700000000123_lassi.png", UploadName(`C:\photos\lassi.png`, at))
	assert.Equal(t, "1700000000123_image.webp", UploadName("???.webp", at))
	assert.Equal(t, "1700000000123_menu", UploadName("menu", at))
}

func TestImageStoreSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	images := newTestImages(t)
	images.now = fixedClock(time.UnixMilli(42))

	name, err := images.Save(ctx, "dal.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "42_dal.jpg", name)

	rc, served, err := images.Open(ctx, name)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg bytes", string(body))
	assert.Equal(t, name, served)
	assert.Equal(t, "/menuImages/42_dal.jpg", images.URL(name))
}

func TestImageStoreFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	images := newTestImages(t)

	_, _, err := images.Open(ctx, "missing.jpg")
	assert.ErrorIs(t, err, models.ErrNotFound, "no default image yet")

	require.NoError(t, images.EnsureDefaultImage(ctx))
	require.NoError(t, images.EnsureDefaultImage(ctx), "second call is a no-op")

	for _, name := range []string{"missing.jpg", "../secret", ""} {
		rc, served, err := images.Open(ctx, name)
		require.NoError(t, err, name)
		_, err = png.Decode(rc)
		rc.Close()
		assert.NoError(t, err)
		assert.Equal(t, "default.png", served)
	}

	assert.Equal(t, "/menuImages/default.png", images.URL(""))
	assert.Equal(t, "data:image/png;base64,AAAA", images.URL("data:image/png;base64,AAAA"))
}

func TestHTTPUploader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, header, err := r.FormFile(UploadField)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "No file uploaded"})
			return
		}
		defer f.Close()
		assert.Equal(t, "req-7", r.Header.Get(reqid.Header), "request id is forwarded")
		json.NewEncoder(w).Encode(map[string]string{"filename": "99_" + header.Filename})
	}))
	defer srv.Close()

	ctx := reqid.WithValue(context.Background(), "req-7")
	name, err := NewHTTPUploader(srv.URL).Upload(ctx, "naan.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "99_naan.jpg", name)
}

func TestHTTPUploaderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPUploader(srv.URL).Upload(context.Background(), "naan.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrUploadFailed)

	srv.Close()
	_, err = NewHTTPUploader(srv.URL).Upload(context.Background(), "naan.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrUploadFailed)
}
