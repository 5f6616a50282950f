package entity

import "time"

// LocationBalance representa la cantidad actual de un artículo en una ubicación.
// Una fila por (artículo, ubicación); se crea al primer movimiento y la
// cantidad nunca es negativa. Solo el motor de traslados la muta.
type LocationBalance struct {
	ItemID    string
	Location  Location
	Quantity  int64
	UpdatedAt time.Time
}
