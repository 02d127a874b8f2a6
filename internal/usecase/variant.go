package usecase

import (
	"fmt"
	"io"

	"cancelflow/internal/entity"
)

// AssignVariant draws one byte from src and maps its low bit to A (even) or B (odd).
// src must be a cryptographically secure source for the split to be unpredictable.
func AssignVariant(src io.Reader) (entity.Variant, error) {
	var b [1]byte
	if _, err := io.ReadFull(src, b[:]); err != nil {
		return "", fmt.Errorf("assign variant: %w", err)
	}
	if b[0]%2 == 0 {
		return entity.VariantA, nil
	}
	return entity.VariantB, nil
}
