package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un contador entero único (sin bodegas ni reservas) y solo se
// modifica a través del libro de inventario; nunca escribir el campo directo.
// Invariante: Stock >= 0 en todo momento.
type Product struct {
	ID             string
	Description    string
	Price          decimal.Decimal
	Barcode        string // único
	Section        string
	Stock          int
	ExpirationDate *time.Time
	ImagePath      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
