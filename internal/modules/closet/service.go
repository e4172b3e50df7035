package closet

import (
	"context"
	"errors"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosetRepositoryInterface interface {
	GetOrCreateByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Closet, error)
	GetItemProductIDs(ctx context.Context, closetID uuid.UUID) ([]int64, error)
	ApplyUpdate(ctx context.Context, closetID uuid.UUID, addIDs, removeIDs []int64) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

// Service manages the per-user closet and its saved items.
type Service struct {
	closets  ClosetRepositoryInterface
	products ProductReader
}

func NewService(closets ClosetRepositoryInterface, products ProductReader) *Service {
	return &Service{closets: closets, products: products}
}

// GetMe returns the caller's closet, creating it on first access. Items
// are split into the caller's own products and public catalog products.
func (s *Service) GetMe(ctx context.Context, ownerID uuid.UUID) (*ClosetResponse, error) {
	closet, err := s.closets.GetOrCreateByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids, err := s.closets.GetItemProductIDs(ctx, closet.ID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &ClosetResponse{
		Closet:         closet,
		OwnedProducts:  []domain.Product{},
		PublicProducts: []domain.Product{},
	}
	for _, p := range products {
		if p.OwnerID == ownerID {
			resp.OwnedProducts = append(resp.OwnedProducts, p)
		} else {
			resp.PublicProducts = append(resp.PublicProducts, p)
		}
	}
	return resp, nil
}

// Update applies additions and removals atomically. Every added id must
// reference an existing product not yet in the closet; every removed id
// must already be there; an id in both lists rejects the whole request.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, req UpdateClosetRequest) (*ClosetResponse, error) {
	removed := make(map[int64]bool, len(req.RemovedProductIDs))
	for _, id := range req.RemovedProductIDs {
		removed[id] = true
	}
	for _, id := range req.AddedProductIDs {
		if removed[id] {
			return nil, ErrProductBothAddedAndRemoved
		}
	}

	closet, err := s.closets.GetOrCreateByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	currentIDs, err := s.closets.GetItemProductIDs(ctx, closet.ID)
	if err != nil {
		return nil, err
	}
	current := make(map[int64]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}

	for _, id := range req.AddedProductIDs {
		if current[id] {
			return nil, ErrProductAlreadyInCloset
		}
		if _, err := s.products.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
	}
	for _, id := range req.RemovedProductIDs {
		if !current[id] {
			return nil, ErrProductNotInCloset
		}
	}

	if err := s.closets.ApplyUpdate(ctx, closet.ID, req.AddedProductIDs, req.RemovedProductIDs); err != nil {
		return nil, err
	}

	return s.GetMe(ctx, ownerID)
}

// Delete removes the closet and its items. Deleting a closet that was
// never created is a no-op.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID) error {
	return s.closets.DeleteByOwner(ctx, ownerID)
}
