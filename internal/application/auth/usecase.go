package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/jwt"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// SessionUseCase sesión única de la consola: login contra la API remota, token persistido
// localmente e identidad decodificada del token como pista de visualización.
type SessionUseCase struct {
	authRepo repository.AuthRepository
	tokens   ports.TokenStore
	bearer   ports.BearerSetter
	store    *state.Store
	log      *logger.Logger

	mu       sync.RWMutex
	identity *entity.Identity
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	authRepo repository.AuthRepository,
	tokens ports.TokenStore,
	bearer ports.BearerSetter,
	store *state.Store,
	log *logger.Logger,
) *SessionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionUseCase{
		authRepo: authRepo,
		tokens:   tokens,
		bearer:   bearer,
		store:    store,
		log:      log.Named("session"),
	}
}

// SignIn envía las credenciales, persiste el token, decodifica la identidad y carga el estado.
// Si la carga inicial falla la sesión queda abierta y el error se devuelve para reintentar.
func (uc *SessionUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	token, err := uc.authRepo.Login(ctx, name, in.Password)
	if err != nil {
		uc.log.Warn().Err(err).Str("user", name).Msg("login rechazado")
		return nil, err
	}
	identity, err := identityFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: token emitido ilegible: %v", domain.ErrRemote, err)
	}
	if err := uc.tokens.SaveToken(token); err != nil {
		return nil, fmt.Errorf("persistir token: %w", err)
	}
	uc.bearer.SetToken(token)
	uc.setIdentity(&identity)
	uc.log.Info().Str("user_id", identity.ID).Str("role", identity.Role).Msg("sesión iniciada")

	resp := uc.Current()
	if err := uc.store.Load(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

// Restore recupera la sesión persistida al arrancar. Un token ilegible cierra la sesión;
// un token que el servidor ya no acepta (401 en la carga) también.
func (uc *SessionUseCase) Restore(ctx context.Context) (*dto.SessionResponse, error) {
	token, err := uc.tokens.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("leer token persistido: %w", err)
	}
	if token == "" {
		return uc.Current(), nil
	}
	identity, err := identityFromToken(token)
	if err != nil {
		uc.log.Warn().Err(err).Msg("token persistido ilegible, cerrando sesión")
		return uc.SignOut(), nil
	}
	uc.bearer.SetToken(token)
	uc.setIdentity(&identity)

	if err := uc.store.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.log.Warn().Msg("token persistido rechazado por la API, cerrando sesión")
			return uc.SignOut(), nil
		}
		return uc.Current(), err
	}
	uc.log.Info().Str("user_id", identity.ID).Msg("sesión restaurada")
	return uc.Current(), nil
}

// SignOut elimina el token, limpia el estado y quita la cabecera Authorization.
func (uc *SessionUseCase) SignOut() *dto.SessionResponse {
	if err := uc.tokens.ClearToken(); err != nil {
		uc.log.Error().Err(err).Msg("eliminar token persistido")
	}
	uc.bearer.ClearToken()
	uc.store.Clear()
	uc.setIdentity(nil)
	return &dto.SessionResponse{Authenticated: false}
}

// Current estado de la sesión.
func (uc *SessionUseCase) Current() *dto.SessionResponse {
	id, ok := uc.Identity()
	if !ok {
		return &dto.SessionResponse{Authenticated: false}
	}
	return &dto.SessionResponse{Authenticated: true, User: dto.FromIdentity(id)}
}

// Identity identidad de la sesión activa.
func (uc *SessionUseCase) Identity() (entity.Identity, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.identity == nil {
		return entity.Identity{}, false
	}
	return *uc.identity, true
}

func (uc *SessionUseCase) setIdentity(id *entity.Identity) {
	uc.mu.Lock()
	uc.identity = id
	uc.mu.Unlock()
}

func identityFromToken(token string) (entity.Identity, error) {
	claims, err := jwt.Decode(token)
	if err != nil {
		return entity.Identity{}, err
	}
	return entity.Identity{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}
