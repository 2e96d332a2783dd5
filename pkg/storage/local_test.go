package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskPutAndStream(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocalDisk(root, "")

	require.NoError(t, d.PutStream(ctx, "menuImages/1_dosa.jpg", strings.NewReader("jpeg")))
	assert.True(t, d.Exists(ctx, "menuImages/1_dosa.jpg"))
	assert.FileExists(t, filepath.Join(root, "menuImages", "1_dosa.jpg"))

	rc, err := d.GetStream(ctx, "menuImages/1_dosa.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg", string(data))

	assert.Equal(t, "/menuImages/1_dosa.jpg", d.URL("menuImages/1_dosa.jpg"))
}

func TestLocalDiskMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "http://cdn.local/")

	_, err := d.GetStream(ctx, "menuImages/nope.png")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, d.Exists(ctx, "menuImages"))

	require.NoError(t, d.Put(ctx, "a.png", []byte("x")))
	require.NoError(t, d.Delete(ctx, "a.png"))
	require.NoError(t, d.Delete(ctx, "a.png"), "deleting twice is fine")
	assert.Equal(t, "http://cdn.local/a.png", d.URL("a.png"))
}

func TestLocalDiskStaysUnderRoot(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "public")
	d := NewLocalDisk(root, "")

	require.NoError(t, d.Put(ctx, "../../escape.txt", []byte("x")))

	_, err := os.Stat(filepath.Join(parent, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(root, "escape.txt"))
}

func TestCloudinaryPublicID(t *testing.T) {
	assert.Equal(t, "menuImages/1700_paneer", publicID("/menuImages/1700_paneer.jpg"))
}

func TestManagerRegisterAndUse(t *testing.T) {
	d := NewLocalDisk(t.TempDir(), "")
	RegisterDisk("test", d)

	got, err := Use("test")
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = Use("ftp")
	assert.Error(t, err)
}
