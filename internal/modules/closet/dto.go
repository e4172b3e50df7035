package closet

import "dressup/internal/domain"

type UpdateClosetRequest struct {
	AddedProductIDs   []int64 `json:"added_product_ids"`
	RemovedProductIDs []int64 `json:"removed_product_ids"`
}

// ClosetResponse splits the saved items into the caller's own products
// and public products saved from the catalog.
type ClosetResponse struct {
	*domain.Closet
	OwnedProducts  []domain.Product `json:"owned_products"`
	PublicProducts []domain.Product `json:"public_products"`
}
