package slots

import "context"

// Repository stores named byte slots.
type Repository interface {
	// Get returns the slot value, or (nil, nil) when the slot is empty.
	Get(ctx context.Context, name string) ([]byte, error)

	// Set overwrites the slot value.
	Set(ctx context.Context, name string, value []byte) error

	// Delete empties the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, name string) error

	// Names lists the non-empty slots.
	Names(ctx context.Context) ([]string, error)

	// Clear empties every slot.
	Clear(ctx context.Context) error
}
