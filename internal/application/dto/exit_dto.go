package dto

// ExitResponse registro de salida.
type ExitResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"`
	ExitType    string `json:"exit_type"`
	Store       string `json:"store,omitempty"`
	Observation string `json:"observation"`
}

// UpdateObservationRequest edición de la nota libre de una salida.
type UpdateObservationRequest struct {
	Observation string `json:"observation"`
}
