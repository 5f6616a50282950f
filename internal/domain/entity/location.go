package entity

// Location es una de las tres ubicaciones físicas de stock del taller.
// Conjunto cerrado: los traslados siempre nombran dos ubicaciones distintas.
type Location string

const (
	LocationWarehouse Location = "warehouse"
	LocationStore     Location = "store"
	LocationStore2    Location = "store2"
)

// Locations lista las ubicaciones válidas en orden estable.
func Locations() []Location {
	return []Location{LocationWarehouse, LocationStore, LocationStore2}
}

// Valid indica si la ubicación pertenece al conjunto cerrado.
func (l Location) Valid() bool {
	switch l {
	case LocationWarehouse, LocationStore, LocationStore2:
		return true
	}
	return false
}
