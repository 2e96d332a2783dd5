package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/shashiranjanraj/dinein/pkg/http"
)

// cloudinaryDisk maps disk paths to Cloudinary public IDs: the directory part
// becomes the asset folder and the extension is dropped.
type cloudinaryDisk struct {
	cld     *cloudinary.Cloudinary
	baseURL string
}

func newCloudinaryDisk(cloud, key, secret string) (*cloudinaryDisk, error) {
	cld, err := cloudinary.NewFromParams(cloud, key, secret)
	if err != nil {
		return nil, fmt.Errorf("storage/cloudinary: %w", err)
	}
	return &cloudinaryDisk{
		cld:     cld,
		baseURL: "https://res.cloudinary.com/" + cloud + "/image/upload",
	}, nil
}

func publicID(p string) string {
	p = strings.TrimLeft(p, "/")
	return strings.TrimSuffix(p, path.Ext(p))
}

func (d *cloudinaryDisk) Put(ctx context.Context, p string, content []byte) error {
	return d.PutStream(ctx, p, bytes.NewReader(content))
}

func (d *cloudinaryDisk) PutStream(ctx context.Context, p string, r io.Reader) error {
	id := publicID(p)
	_, err := d.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Dir(id),
		PublicID:     path.Base(id),
		ResourceType: "image",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("storage/cloudinary: upload %s: %w", p, err)
	}
	return nil
}

// GetStream downloads the delivered asset so the static image route can
// proxy it like any other disk.
func (d *cloudinaryDisk) GetStream(ctx context.Context, p string) (io.ReadCloser, error) {
	resp, err := http.Get(d.URL(p)).WithContext(ctx).Send()
	if err != nil {
		return nil, fmt.Errorf("storage/cloudinary: get %s: %w", p, err)
	}
	if resp.StatusCode == 404 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("storage/cloudinary: get %s: %w", p, err)
	}
	return io.NopCloser(bytes.NewReader(resp.Raw)), nil
}

func (d *cloudinaryDisk) Exists(ctx context.Context, p string) bool {
	rc, err := d.GetStream(ctx, p)
	if err != nil {
		return false
	}
	rc.Close()
	return true
}

func (d *cloudinaryDisk) URL(p string) string {
	return d.baseURL + "/" + publicID(p)
}

func (d *cloudinaryDisk) Delete(ctx context.Context, p string) error {
	_, err := d.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID(p)})
	if err != nil {
		return fmt.Errorf("storage/cloudinary: destroy %s: %w", p, err)
	}
	return nil
}
