package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/pkg/collection"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/validate"
)

func init() {
	err := validate.RegisterString("menu_category", "The selected %s is invalid.", models.ValidCategory)
	if err != nil {
		panic(err)
	}
}

// MenuForm is the admin create/edit form. A non-empty ID means edit.
type MenuForm struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"       validate:"required"`
	PriceAC    float64 `json:"priceAC"    validate:"required,gt=0"`
	PriceNonAC float64 `json:"priceNonAC" validate:"required,gt=0"`
	Category   string  `json:"category"   validate:"omitempty,menu_category"`
}

// ImageFile is a newly selected image to upload with the form.
type ImageFile struct {
	Filename string
	Body     io.Reader
}

// AdminMenu is the admin list, flat and grouped by category.
type AdminMenu struct {
	Items  []models.MenuItem                   `json:"items"`
	Groups []collection.Group[models.MenuItem] `json:"groups"`
}

type MenuAdmin struct {
	catalog  repositories.CatalogStore
	uploader Uploader
	images   ImageRemover // nil when images live behind a remote upload service
}

// NewMenuAdmin builds the admin view. When uploader also stores images
// locally, images replaced or orphaned by an edit or delete are removed.
func NewMenuAdmin(catalog repositories.CatalogStore, uploader Uploader) *MenuAdmin {
	images, _ := uploader.(ImageRemover)
	return &MenuAdmin{catalog: catalog, uploader: uploader, images: images}
}

func (s *MenuAdmin) Load(ctx context.Context) (AdminMenu, error) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		return AdminMenu{}, fmt.Errorf("menu admin: load: %w", err)
	}
	return AdminMenu{
		Items:  items,
		Groups: collection.GroupBy(items, models.MenuItem.GroupLabel, models.CategoryRank),
	}, nil
}

// Submit validates form, uploads file when one is given, then creates or
// updates the item and returns the refreshed list. Nothing is written when
// validation or the upload fails.
func (s *MenuAdmin) Submit(ctx context.Context, form MenuForm, file *ImageFile) (AdminMenu, error) {
	form.ID = strings.TrimSpace(form.ID)
	form.Name = strings.TrimSpace(form.Name)
	form.Category = strings.TrimSpace(form.Category)

	if errs := validate.Struct(form); validate.HasErrors(errs) {
		return AdminMenu{}, models.Invalid(errs)
	}

	var item models.MenuItem
	if err := copier.Copy(&item, &form); err != nil {
		return AdminMenu{}, fmt.Errorf("menu admin: map form: %w", err)
	}

	editing := form.ID != ""
	previous := ""
	if editing {
		existing, err := repositories.FindItem(ctx, s.catalog, form.ID)
		if err != nil {
			return AdminMenu{}, err
		}
		item.Image = existing.Image
		previous = existing.Image
	}

	if file != nil {
		name, err := s.uploader.Upload(ctx, file.Filename, file.Body)
		if err != nil {
			if !errors.Is(err, models.ErrUploadFailed) {
				err = fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
			}
			logger.WithCtx(ctx).Warn("menu admin: upload failed, save aborted", "item", form.ID, "error", err)
			return AdminMenu{}, err
		}
		item.Image = name
	}

	if editing {
		if err := s.catalog.Update(ctx, item); err != nil {
			return AdminMenu{}, err
		}
		if previous != item.Image {
			s.removeImage(ctx, previous)
		}
	} else if _, err := s.catalog.Create(ctx, item); err != nil {
		return AdminMenu{}, err
	}

	return s.Load(ctx)
}

// removeImage drops an image nothing references any more. Failures only
// leave an orphaned file, so they are logged and not returned.
func (s *MenuAdmin) removeImage(ctx context.Context, name string) {
	if s.images == nil || name == "" {
		return
	}
	if err := s.images.Remove(ctx, name); err != nil {
		logger.WithCtx(ctx).Warn("menu admin: image cleanup failed", "image", name, "error", err)
	}
}

// Edit returns the stored fields of id for loading into the form.
func (s *MenuAdmin) Edit(ctx context.Context, id string) (models.MenuItem, error) {
	return repositories.FindItem(ctx, s.catalog, id)
}

// Delete removes id once the caller has confirmed, and returns what is left.
func (s *MenuAdmin) Delete(ctx context.Context, id string, confirmed bool) (AdminMenu, error) {
	if !confirmed {
		return AdminMenu{}, models.ErrNotConfirmed
	}

	image := ""
	if s.images != nil {
		existing, err := repositories.FindItem(ctx, s.catalog, id)
		if err != nil {
			return AdminMenu{}, err
		}
		image = existing.Image
	}

	if err := s.catalog.Delete(ctx, id); err != nil {
		return AdminMenu{}, err
	}
	s.removeImage(ctx, image)

	logger.WithCtx(ctx).Info("menu admin: item deleted", "item", id)
	return s.Load(ctx)
}
