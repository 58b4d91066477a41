package restapi

import (
	"fmt"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// APIError falla de una llamada a la API remota: respuesta no 2xx o error de transporte (Status 0).
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api remota %s %s: %s: %v", e.Method, e.Path, e.Message, e.cause)
	}
	return fmt.Sprintf("api remota %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap permite errors.Is contra domain.ErrRemote y el error de dominio según el status.
func (e *APIError) Unwrap() []error {
	errs := []error{domain.ErrRemote}
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		errs = append(errs, domain.ErrInvalidInput)
	case http.StatusUnauthorized:
		errs = append(errs, domain.ErrUnauthorized)
	case http.StatusForbidden:
		errs = append(errs, domain.ErrForbidden)
	case http.StatusNotFound:
		errs = append(errs, domain.ErrNotFound)
	case http.StatusConflict:
		errs = append(errs, domain.ErrConflict)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}
