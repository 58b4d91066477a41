package dto

// PlaceRequest inclusión de cajas en una localización.
type PlaceRequest struct {
	SKU         string `json:"sku" validate:"required"`
	Location    string `json:"location" validate:"required"`
	UnitsPerBox int    `json:"units_per_box" validate:"required,min=1"`
	Containers  int    `json:"containers" validate:"required,min=1"`
}

// TransferRequest movimiento de cajas de un lote a otra localización.
type TransferRequest struct {
	Destination string `json:"destination" validate:"required"`
	Containers  int    `json:"containers" validate:"required,min=1"`
}

// ShipRequest salida de cajas de un lote.
type ShipRequest struct {
	ExitType    string `json:"exit_type" validate:"required,oneof=Expedição Full"`
	Store       string `json:"store"`
	Observation string `json:"observation"`
	Containers  int    `json:"containers" validate:"required,min=1"`
}

// LotResponse lote por localización.
type LotResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	UnitsPerBox int    `json:"units_per_box"`
	Volume      int    `json:"volume"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"`
}

// OperationResponse resultado de una operación de stock.
type OperationResponse struct {
	OperationID string        `json:"operation_id"`
	RemoteCalls int           `json:"remote_calls"`
	Exit        *ExitResponse `json:"exit,omitempty"`
}
