package closet

import "errors"

var (
	ErrProductBothAddedAndRemoved = errors.New("product both added and removed")
	ErrProductAlreadyInCloset     = errors.New("product already in closet")
	ErrProductNotInCloset         = errors.New("product not in closet")
	ErrProductNotFound            = errors.New("product not found")
)
