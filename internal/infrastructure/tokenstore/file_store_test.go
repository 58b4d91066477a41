package tokenstore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/infrastructure/tokenstore"
)

func TestFileStore_TokenSobreviveReinicio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "storage.json")

	s := tokenstore.NewFileStore(path)
	tok, err := s.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, tok, "sin archivo no hay token")

	require.NoError(t, s.SaveToken("abc.def.ghi"))

	reopened := tokenstore.NewFileStore(path)
	tok, err = reopened.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var items map[string]string
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Equal(t, "abc.def.ghi", items["@gerenciador:token"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ClearConservaOtrasClaves(t *testing.T) {
	s := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, s.Set("tema", "escuro"))
	require.NoError(t, s.SaveToken("t"))

	require.NoError(t, s.ClearToken())
	require.NoError(t, s.ClearToken(), "limpiar dos veces no falla")

	tok, err := s.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, tok)
	v, err := s.Get("tema")
	require.NoError(t, err)
	assert.Equal(t, "escuro", v)
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{no json"), 0o600))

	_, err := tokenstore.NewFileStore(path).LoadToken()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	var m tokenstore.MemoryStore
	require.NoError(t, m.SaveToken("x"))
	tok, _ := m.LoadToken()
	assert.Equal(t, "x", tok)
	require.NoError(t, m.ClearToken())
	tok, _ = m.LoadToken()
	assert.Empty(t, tok)
}
