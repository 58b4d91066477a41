package auth_test

import (
	"context"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository/repositorytest"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/tokenstore"
)

type fakeBearer struct{ token string }

func (f *fakeBearer) SetToken(t string) { f.token = t }
func (f *fakeBearer) ClearToken()       { f.token = "" }

type fixture struct {
	backend *repositorytest.Backend
	tokens  *tokenstore.MemoryStore
	bearer  *fakeBearer
	store   *state.Store
	uc      *auth.SessionUseCase
}

func tokenFor(t *testing.T, sub, name, role string) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": sub, "name": name, "role": role,
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func newFixture(t *testing.T) *fixture {
	b := repositorytest.NewBackend()
	b.Token = tokenFor(t, "u-1", "Ana", entity.RoleAdmin)
	b.Passwords["ana"] = "segredo"
	b.ProductsData = []entity.Product{{SKU: "X"}}

	f := &fixture{backend: b, tokens: &tokenstore.MemoryStore{}, bearer: &fakeBearer{}}
	f.store = state.NewStore(state.Repositories{
		Products: b, Lots: b.Lots(), MasterLocations: b.Masters(), Exits: b.Exits(),
	}, nil)
	f.uc = auth.NewSessionUseCase(b, f.tokens, f.bearer, f.store, nil)
	return f
}

func TestSignIn_PersisteTokenYCargaEstado(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SignIn(context.Background(), dto.LoginRequest{Name: "ana", Password: "segredo"})
	require.NoError(t, err)
	require.True(t, resp.Authenticated)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.True(t, resp.User.IsAdmin)

	saved, _ := f.tokens.LoadToken()
	assert.Equal(t, f.backend.Token, saved)
	assert.Equal(t, f.backend.Token, f.bearer.token)
	assert.True(t, f.store.Loaded())
	assert.Len(t, f.store.Products(), 1)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SignIn(context.Background(), dto.LoginRequest{Name: "ana", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, f.uc.Current().Authenticated)
	saved, _ := f.tokens.LoadToken()
	assert.Empty(t, saved)

	_, err = f.uc.SignIn(context.Background(), dto.LoginRequest{Name: " ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRestore_TokenPersistido(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.SaveToken(tokenFor(t, "u-2", "Bia", entity.RoleUsuario)))

	resp, err := f.uc.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Authenticated)
	assert.Equal(t, entity.RoleUsuario, resp.User.Role)
	assert.False(t, resp.User.IsAdmin)
	assert.True(t, f.store.Loaded())
}

func TestRestore_TokenIlegibleCierraSesion(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.SaveToken("lixo"))

	resp, err := f.uc.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
	saved, _ := f.tokens.LoadToken()
	assert.Empty(t, saved)
}

func TestRestore_TokenRechazadoCierraSesion(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.SaveToken(tokenFor(t, "u-1", "Ana", entity.RoleAdmin)))
	f.backend.FailOn["products.list"] = domain.ErrUnauthorized

	resp, err := f.uc.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
	assert.Empty(t, f.bearer.token)
}

func TestRestore_SinToken(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
	assert.Empty(t, f.backend.CallLog())
}

func TestSignOut_LimpiaTodo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.SignIn(context.Background(), dto.LoginRequest{Name: "ana", Password: "segredo"})
	require.NoError(t, err)

	resp := f.uc.SignOut()
	assert.False(t, resp.Authenticated)
	assert.Empty(t, f.bearer.token)
	assert.False(t, f.store.Loaded())
	_, ok := f.uc.Identity()
	assert.False(t, ok)
}
