package storage

import (
	"context"

	"housing-info/models"
)

// HouseWriter is the interface any tabular sink must satisfy.
type HouseWriter interface {
	Write(houses []models.House) error
	Close() error
}

// HouseMirror replaces a stored copy of the dataset.
type HouseMirror interface {
	Replace(ctx context.Context, houses []models.House) (int, error)
	Close() error
}
