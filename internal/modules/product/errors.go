package product

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrNotProductOwner     = errors.New("not the product owner")
	ErrInvalidScore        = errors.New("score must be between 1 and 5")
	ErrReviewAlreadyExists = errors.New("review already exists")
	ErrReviewNotFound      = errors.New("review not found")
)
