package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrEmptyName           = errors.New("asset name cannot be empty")
	ErrEmptyIdentifier     = errors.New("asset name produces an empty identifier")
	ErrUnknownKind         = errors.New("unknown asset kind")
	ErrUnknownFormat       = errors.New("unknown output format")
	ErrCatalogNotFound     = errors.New("asset catalog not found")
)

// CollisionError reports every identifier shared by more than one asset
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	parts := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicateIdentifier, strings.Join(parts, "; "))
}

func (e *CollisionError) Unwrap() error {
	return ErrDuplicateIdentifier
}
