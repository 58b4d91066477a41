package restapi

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.MasterLocationRepository = (*MasterLocationRepository)(nil)

// MasterLocationRepository lista maestra de etiquetas (/master-locations).
type MasterLocationRepository struct {
	c *Client
}

// NewMasterLocationRepository construye el repositorio.
func NewMasterLocationRepository(c *Client) *MasterLocationRepository {
	return &MasterLocationRepository{c: c}
}

// List GET /master-locations (array de strings).
func (r *MasterLocationRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.c.get(ctx, "/master-locations", &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Create POST /master-location.
func (r *MasterLocationRepository) Create(ctx context.Context, name string) error {
	return r.c.post(ctx, "/master-location", map[string]string{"name": name}, nil)
}

// Delete DELETE /master-location/{name}.
func (r *MasterLocationRepository) Delete(ctx context.Context, name string) error {
	return r.c.delete(ctx, "/master-location/"+pathEscape(name))
}
