package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// ImageBase64 admite el prefijo data-URL ("data:image/png;base64,...") o el payload pelado.
type CreateProductRequest struct {
	Description    string          `json:"description" validate:"required,min=1,max=200"`
	Price          decimal.Decimal `json:"price"`
	Barcode        string          `json:"barcode" validate:"required"`
	Section        string          `json:"section" validate:"required"`
	Stock          int             `json:"stock" validate:"min=0"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	ImageBase64    string          `json:"image_base64"`
}

// UpdateProductRequest entrada para actualizar un producto (solo campos presentes).
// Stock no se actualiza por aquí: solo muta vía el libro de inventario.
type UpdateProductRequest struct {
	Description    *string          `json:"description" validate:"omitempty,min=1,max=200"`
	Price          *decimal.Decimal `json:"price"`
	Barcode        *string          `json:"barcode"`
	Section        *string          `json:"section"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	ImageBase64    *string          `json:"image_base64"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Barcode        string          `json:"barcode"`
	Section        string          `json:"section"`
	Stock          int             `json:"stock"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	ImagePath      string          `json:"image_path"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListFilter filtros del listado (query params).
type ProductListFilter struct {
	Section   string           `query:"section"`
	MinPrice  *decimal.Decimal `query:"min_price"`
	MaxPrice  *decimal.Decimal `query:"max_price"`
	Available *bool            `query:"available"`
}
