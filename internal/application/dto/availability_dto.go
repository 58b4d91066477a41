package dto

// Estados de disponibilidad de una localización.
const (
	AvailabilityOccupied = "Ocupado"
	AvailabilityFree     = "Livre"
)

// AvailabilityResponse localización de la lista maestra y su estado.
type AvailabilityResponse struct {
	Location string `json:"location"`
	Status   string `json:"status"`
}

// AddLocationRequest alta de una etiqueta en la lista maestra.
type AddLocationRequest struct {
	Name string `json:"name" validate:"required"`
}
