package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto con este SKU no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("volumen insuficiente en el lote de origen")

	// ErrLocationOccupied la localización ya contiene otro SKU (una localización guarda un solo producto).
	ErrLocationOccupied = errors.New("localización ocupada por otro producto")
	// ErrStoreRequired salida Full sin tienda seleccionada.
	ErrStoreRequired = errors.New("la salida Full requiere una tienda")

	// ErrSubmissionInProgress ya hay una operación de stock en curso.
	ErrSubmissionInProgress = errors.New("operación en curso, espere a que termine")
	// ErrRemote la API remota respondió con error o no fue alcanzable.
	ErrRemote = errors.New("falla en la API remota")
	// ErrPartialSequence una secuencia de varias llamadas quedó aplicada a medias en la API remota.
	ErrPartialSequence = errors.New("secuencia aplicada parcialmente")
	// ErrNoSession no hay token de sesión.
	ErrNoSession = errors.New("sesión no iniciada")
)
