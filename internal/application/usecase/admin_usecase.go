package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// AdminUseCase solicitudes de eliminación, usuarios y log de auditoría.
// La API remota vuelve a verificar el rol en cada llamada.
type AdminUseCase struct {
	requests repository.DeletionRequestRepository
	users    repository.UserRepository
	audit    repository.AuditLogRepository
	store    *state.Store
	log      *logger.Logger
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(
	requests repository.DeletionRequestRepository,
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	store *state.Store,
	log *logger.Logger,
) *AdminUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminUseCase{requests: requests, users: users, audit: audit, store: store, log: log.Named("admin")}
}

// ── Solicitudes de eliminación ────────────────────────────────────────────────

// ListDeletionRequests solicitudes pendientes.
func (uc *AdminUseCase) ListDeletionRequests(ctx context.Context) ([]dto.DeletionRequestResponse, error) {
	list, err := uc.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeletionRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.DeletionRequestResponse{
			ID:            r.ID,
			ProductSKU:    r.ProductSKU,
			Status:        r.Status,
			RequestedByID: r.RequestedByID,
			CreatedAt:     dto.FormatDate(r.CreatedAt),
		})
	}
	return out, nil
}

// PendingCount cantidad de solicitudes pendientes.
func (uc *AdminUseCase) PendingCount(ctx context.Context) (*dto.PendingCountResponse, error) {
	n, err := uc.requests.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PendingCountResponse{PendingRequests: n}, nil
}

// ApproveDeletion aprueba la solicitud; la API elimina el producto y el catálogo local se relee.
func (uc *AdminUseCase) ApproveDeletion(ctx context.Context, id string) error {
	if err := uc.requests.Approve(ctx, id); err != nil {
		uc.log.Error().Err(err).Str("request_id", id).Msg("aprobar solicitud")
		return err
	}
	if err := uc.store.RefreshProducts(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("relectura de productos tras aprobación fallida")
	}
	uc.log.Info().Str("request_id", id).Msg("solicitud aprobada")
	return nil
}

// RejectDeletion rechaza la solicitud.
func (uc *AdminUseCase) RejectDeletion(ctx context.Context, id string) error {
	if err := uc.requests.Reject(ctx, id); err != nil {
		uc.log.Error().Err(err).Str("request_id", id).Msg("rechazar solicitud")
		return err
	}
	uc.log.Info().Str("request_id", id).Msg("solicitud rechazada")
	return nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// ListUsers usuarios registrados.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// CreateUser alta de usuario; la contraseña viaja tal cual y la hashea la API.
func (uc *AdminUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	u, err := uc.users.Create(ctx, name, in.Password, in.Role)
	if err != nil {
		uc.log.Error().Err(err).Str("name", name).Msg("crear usuario")
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// UpdateRole cambia el rol del usuario id.
func (uc *AdminUseCase) UpdateRole(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	u, err := uc.users.UpdateRole(ctx, id, in.Role)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", id).Msg("cambiar rol")
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// ── Auditoría ─────────────────────────────────────────────────────────────────

// ListAuditLogs entradas del log en el orden que las entrega la API.
func (uc *AdminUseCase) ListAuditLogs(ctx context.Context) ([]dto.AuditLogResponse, error) {
	list, err := uc.audit.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		ts := ""
		if !l.Timestamp.IsZero() {
			ts = l.Timestamp.Format("02/01/2006 15:04:05")
		}
		out = append(out, dto.AuditLogResponse{
			ID:         l.ID,
			ActionType: l.ActionType,
			UserID:     l.UserID,
			Details:    l.Details,
			Timestamp:  ts,
		})
	}
	return out, nil
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: dto.FormatDate(u.CreatedAt)}
}
