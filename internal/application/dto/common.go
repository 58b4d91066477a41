package dto

// DefaultPageSize ítems por página en los listados.
const DefaultPageSize = 12

// ModalPageSize ítems por página en las listas del dashboard.
const ModalPageSize = 9

// DateLayout formato de fecha en las respuestas (dd/mm/aaaa).
const DateLayout = "02/01/2006"

// PageResponse metadatos de página en respuestas. Page empieza en 1.
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page lista paginada.
type Page[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// Paginate recorta items a la página pedida. Páginas fuera de rango se ajustan a la
// primera o a la última; size <= 0 usa DefaultPageSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = max(totalPages, 1)
	}
	start := min((page-1)*size, total)
	end := start + min(size, total-start)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items: out,
		Page:  PageResponse{Page: page, PageSize: size, Total: total, TotalPages: totalPages},
	}
}

// ListQuery parámetros de búsqueda y paginación de los listados.
// Refresh relee la colección desde la API antes de filtrar.
type ListQuery struct {
	Search   string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Refresh  bool   `query:"refresh"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
