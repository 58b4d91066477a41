// Package tokenstore "local storage" de la consola: un archivo JSON clave → valor
// donde se persiste el token de sesión entre reinicios.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey clave fija bajo la que se guarda el token.
const TokenKey = "@gerenciador:token"

// FileStore almacenamiento clave → valor en un archivo JSON. Las escrituras son atómicas
// (archivo temporal + rename) y el archivo queda con permisos 0600.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el store; el archivo se crea en la primera escritura.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadToken devuelve el token persistido o "" si no hay.
func (s *FileStore) LoadToken() (string, error) {
	return s.Get(TokenKey)
}

// SaveToken persiste el token.
func (s *FileStore) SaveToken(token string) error {
	return s.Set(TokenKey, token)
}

// ClearToken elimina el token.
func (s *FileStore) ClearToken() error {
	return s.Remove(TokenKey)
}

// Get valor de key, "" si no existe.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return "", err
	}
	return items[key], nil
}

// Set guarda key = value.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(items)
}

// Remove elimina key. No falla si no existe.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: leer %s: %w", s.path, err)
	}
	items := map[string]string{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("tokenstore: archivo %s corrupto: %w", s.path, err)
	}
	return items, nil
}

func (s *FileStore) write(items map[string]string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("tokenstore: crear directorio: %w", err)
		}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenstore: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*")
	if err != nil {
		return fmt.Errorf("tokenstore: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: escribir: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("tokenstore: reemplazar %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore implementación en memoria (tests y modo sin persistencia).
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) SaveToken(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ClearToken() error {
	return m.SaveToken("")
}
