package restapi

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var (
	_ repository.DeletionRequestRepository = (*DeletionRequestRepository)(nil)
	_ repository.UserRepository            = (*UserRepository)(nil)
	_ repository.AuditLogRepository        = (*AuditLogRepository)(nil)
)

// DeletionRequestRepository /admin/deletion-requests.
type DeletionRequestRepository struct {
	c *Client
}

// NewDeletionRequestRepository construye el repositorio.
func NewDeletionRequestRepository(c *Client) *DeletionRequestRepository {
	return &DeletionRequestRepository{c: c}
}

func (r *DeletionRequestRepository) List(ctx context.Context) ([]entity.DeletionRequest, error) {
	var rows []deletionRequestWire
	if err := r.c.get(ctx, "/admin/deletion-requests", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.DeletionRequest, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (r *DeletionRequestRepository) Approve(ctx context.Context, id string) error {
	return r.c.post(ctx, "/admin/deletion-requests/"+pathEscape(id)+"/approve", nil, nil)
}

func (r *DeletionRequestRepository) Reject(ctx context.Context, id string) error {
	return r.c.post(ctx, "/admin/deletion-requests/"+pathEscape(id)+"/reject", nil, nil)
}

// CountPending GET /admin/deletion-requests/count → {"pendingRequests": n}.
func (r *DeletionRequestRepository) CountPending(ctx context.Context) (int, error) {
	var resp struct {
		PendingRequests int `json:"pendingRequests"`
	}
	if err := r.c.get(ctx, "/admin/deletion-requests/count", &resp); err != nil {
		return 0, err
	}
	return resp.PendingRequests, nil
}

// UserRepository /admin/users y /admin/user.
type UserRepository struct {
	c *Client
}

// NewUserRepository construye el repositorio.
func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	var rows []userWire
	if err := r.c.get(ctx, "/admin/users", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// Create POST /admin/user. La contraseña viaja en claro al servidor, que la hashea.
func (r *UserRepository) Create(ctx context.Context, name, password, role string) (entity.User, error) {
	var created userWire
	body := map[string]string{"name": name, "password": password, "role": role}
	if err := r.c.post(ctx, "/admin/user", body, &created); err != nil {
		return entity.User{}, err
	}
	if created.Name == "" {
		created.Name, created.Role = name, role
	}
	return created.toEntity(), nil
}

// UpdateRole PUT /admin/user/{id}.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (entity.User, error) {
	var updated userWire
	if err := r.c.put(ctx, "/admin/user/"+pathEscape(id), map[string]string{"role": role}, &updated); err != nil {
		return entity.User{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	if updated.Role == "" {
		updated.Role = role
	}
	return updated.toEntity(), nil
}

// AuditLogRepository /admin/audit-logs.
type AuditLogRepository struct {
	c *Client
}

// NewAuditLogRepository construye el repositorio.
func NewAuditLogRepository(c *Client) *AuditLogRepository {
	return &AuditLogRepository{c: c}
}

func (r *AuditLogRepository) List(ctx context.Context) ([]entity.AuditLog, error) {
	var rows []auditLogWire
	if err := r.c.get(ctx, "/admin/audit-logs", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.AuditLog, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}
