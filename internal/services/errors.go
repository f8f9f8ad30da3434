package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrOutOfStock  = errors.New("variant is out of stock")
	ErrNoVariant   = errors.New("no such size/color for this product")
	ErrBadRating   = errors.New("rating must be between 1 and 5")
	ErrBadQuantity = errors.New("quantity must not be negative")
)

// notFound translates the driver's no-document error into the service-level
// sentinel the handlers map to 404.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
