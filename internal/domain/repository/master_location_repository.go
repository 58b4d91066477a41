package repository

import "context"

// MasterLocationRepository lista maestra de etiquetas de localización, independiente de la ocupación.
type MasterLocationRepository interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}
