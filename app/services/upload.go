package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/shashiranjanraj/dinein/app/models"
	client "github.com/shashiranjanraj/dinein/pkg/http"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/metrics"
	"github.com/shashiranjanraj/dinein/pkg/reqid"
	"github.com/shashiranjanraj/dinein/pkg/storage"
)

// UploadField is the multipart field carrying the image file.
const UploadField = "image"

// Uploader sends an image to the upload service and returns the stored
// filename. Failures wrap models.ErrUploadFailed.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ImageRemover deletes an image the catalog no longer references.
type ImageRemover interface {
	Remove(ctx context.Context, name string) error
}

// UploadName builds a collision-resistant name for original from the
// submission time: <unix-millis>_<slug of base name><ext>.
func UploadName(original string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := path.Ext(base)

	stem := slug.Make(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "image"
	}
	return fmt.Sprintf("%d_%s%s", at.UnixMilli(), stem, strings.ToLower(ext))
}

// ImageStore keeps menu images on a storage disk under dir.
type ImageStore struct {
	disk        storage.Disk
	dir         string
	defaultName string
	now         func() time.Time
}

func NewImageStore(disk storage.Disk, dir, defaultName string) *ImageStore {
	return &ImageStore{
		disk:        disk,
		dir:         strings.Trim(dir, "/"),
		defaultName: defaultName,
		now:         time.Now,
	}
}

func (s *ImageStore) key(name string) string {
	return s.dir + "/" + name
}

// Save stores r under a fresh upload name and returns that name.
func (s *ImageStore) Save(ctx context.Context, original string, r io.Reader) (string, error) {
	name := UploadName(original, s.now())

	if err := s.disk.PutStream(ctx, s.key(name), r); err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("images: save %s: %w", name, err)
	}

	metrics.ImageUploads.WithLabelValues("ok").Inc()
	logger.WithCtx(ctx).Info("images: stored", "filename", name)
	return name, nil
}

// Upload lets the in-process store stand in for the remote upload service.
func (s *ImageStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := s.Save(ctx, filename, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}
	return name, nil
}

// Remove deletes the stored image called name. Empty, unsafe and default
// names are left alone, as are images already gone.
func (s *ImageStore) Remove(ctx context.Context, name string) error {
	if !validImageName(name) || name == s.defaultName {
		return nil
	}

	err := s.disk.Delete(ctx, s.key(name))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("images: remove %s: %w", name, err)
	}
	return nil
}

// Open returns the stored image called name together with the name actually
// served. Unknown or unsafe names fall back to the default image.
func (s *ImageStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if validImageName(name) {
		rc, err := s.disk.GetStream(ctx, s.key(name))
		if err == nil {
			return rc, name, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, "", err
		}
	}

	rc, err := s.disk.GetStream(ctx, s.key(s.defaultName))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", models.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return rc, s.defaultName, nil
}

// URL is the public address of the image named name, or of the default
// image when name is empty. Embedded data and absolute URLs pass through.
func (s *ImageStore) URL(name string) string {
	switch {
	case name == "":
		return s.disk.URL(s.key(s.defaultName))
	case strings.HasPrefix(name, "data:"),
		strings.HasPrefix(name, "http://"),
		strings.HasPrefix(name, "https://"):
		return name
	}
	return s.disk.URL(s.key(name))
}

// EnsureDefaultImage writes a plain placeholder when the disk has no default
// image yet.
func (s *ImageStore) EnsureDefaultImage(ctx context.Context) error {
	if s.disk.Exists(ctx, s.key(s.defaultName)) {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	grey := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, grey)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("images: encode default: %w", err)
	}
	return s.disk.Put(ctx, s.key(s.defaultName), buf.Bytes())
}

func validImageName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// HTTPUploader posts images to a running upload endpoint.
type HTTPUploader struct {
	url     string
	timeout time.Duration
}

func NewHTTPUploader(url string) *HTTPUploader {
	return &HTTPUploader{url: url, timeout: 30 * time.Second}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	req := client.Post(u.url).WithContext(ctx)
	if id := reqid.FromCtx(ctx); id != "" {
		req = req.Header(reqid.Header, id)
	}

	resp, err := req.
		Multipart(UploadField, filename, r).
		Timeout(u.timeout).
		Retry(1, 0).
		Send()
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	if !resp.OK() {
		var body struct {
			Error string `json:"error"`
		}
		_ = resp.JSON(&body)
		return "", fmt.Errorf("%w: status %d %s", models.ErrUploadFailed, resp.StatusCode, body.Error)
	}

	var out struct {
		Filename string `json:"filename"`
	}
	if err := resp.JSON(&out); err != nil || out.Filename == "" {
		return "", fmt.Errorf("%w: response carried no filename", models.ErrUploadFailed)
	}
	return out.Filename, nil
}
