package dto

// BarDTO barra del gráfico de salidas.
type BarDTO struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// PieDTO conteo de productos por clasificación.
type PieDTO struct {
	OK         int `json:"ok"`
	Repurchase int `json:"repurchase"`
	Stagnant   int `json:"stagnant"`
}

// RepurchaseItemDTO producto que necesita recompra.
type RepurchaseItemDTO struct {
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"current_quantity"`
	RepurchaseRule  int    `json:"repurchase_rule"`
}

// StagnantItemDTO producto parado.
type StagnantItemDTO struct {
	SKU                   string `json:"sku"`
	Name                  string `json:"name"`
	CurrentQuantity       int    `json:"current_quantity"`
	DaysSinceLastMovement int    `json:"days_since_last_movement"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Bars       []BarDTO                `json:"bars"`
	Pie        PieDTO                  `json:"pie"`
	Repurchase Page[RepurchaseItemDTO] `json:"repurchase"`
	Stagnant   Page[StagnantItemDTO]   `json:"stagnant"`
}

// DashboardQuery tiendas seleccionadas y páginas de las listas.
type DashboardQuery struct {
	Stores         []string
	RepurchasePage int
	StagnantPage   int
}

// HomeResponse tarjetas de la página inicial.
type HomeResponse struct {
	UniqueProducts    int  `json:"unique_products"`
	ItemsInStock      int  `json:"items_in_stock"`
	OccupiedLocations int  `json:"occupied_locations"`
	FreeLocations     int  `json:"free_locations"`
	PendingRequests   *int `json:"pending_requests,omitempty"` // solo ADMIN
}
