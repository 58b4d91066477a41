package entity

import "time"

// Canales de salida. Los valores son los que persiste la API remota.
const (
	ExitTypeDispatch = "Expedição" // expedición genérica
	ExitTypeFull     = "Full"      // fulfillment por tienda
)

// Tiendas disponibles para salidas Full.
const (
	StoreShein         = "Shein"
	StoreAmazon        = "Amazon"
	StoreMercadoLivre  = "Mercado Livre"
	StoreShopee        = "Shopee"
	StoreMagazineLuiza = "Magazine Luiza"
)

// Stores lista ordenada de tiendas (orden del selector del dashboard).
var Stores = []string{StoreShein, StoreAmazon, StoreMercadoLivre, StoreShopee, StoreMagazineLuiza}

// ValidStore indica si s es una tienda conocida.
func ValidStore(s string) bool {
	for _, st := range Stores {
		if st == s {
			return true
		}
	}
	return false
}

// OutboundRecord registro inmutable de una salida de stock. Solo Observation puede editarse.
type OutboundRecord struct {
	ID          string
	SKU         string
	Name        string
	Quantity    int // cajas retiradas * unidades por caja
	Date        time.Time
	ExitType    string // ExitTypeDispatch | ExitTypeFull
	Store       string // solo ExitTypeFull
	Observation string
}
