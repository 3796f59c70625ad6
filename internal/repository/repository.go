// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/mhasan/show-catalog/internal/model"
)

// ShowRepository is the persistence contract for catalog entries.
//
// Create fills in the generated ID on the passed Show. Update overwrites
// title, description and category unconditionally; a nil Image means
// "preserve whatever image the row already has", a non-nil Image replaces it.
// GetByID, Update and Delete return apperror.ErrNotFound (wrapped) when no
// row matches.
type ShowRepository interface {
	Create(ctx context.Context, show *model.Show) error
	List(ctx context.Context) ([]model.Show, error)
	GetByID(ctx context.Context, id int64) (*model.Show, error)
	Update(ctx context.Context, show *model.Show) error
	Delete(ctx context.Context, id int64) error
}
