// Package search filtros de texto de los listados: "contiene" sin distinguir mayúsculas.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Contains indica si field contiene query sin distinguir mayúsculas (case folding Unicode).
// Una consulta vacía coincide con todo.
func Contains(field, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(fold.String(field), fold.String(query))
}

// AnyContains indica si alguno de los campos contiene query.
func AnyContains(query string, fields ...string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	for _, f := range fields {
		if Contains(f, query) {
			return true
		}
	}
	return false
}

// Filter devuelve los elementos cuyo texto (según fields) contiene query. Conserva el orden.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if AnyContains(query, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
