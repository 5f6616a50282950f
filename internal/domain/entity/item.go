package entity

import "time"

// Item representa un artículo del catálogo (repuestos, equipos).
// El catálogo es un colaborador externo; el núcleo solo referencia por ID.
type Item struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
