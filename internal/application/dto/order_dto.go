package dto

import "time"

// OrderLineRequest una línea (producto, cantidad) al crear un pedido.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest entrada para crear un pedido.
// Status es etiqueta libre; vacío equivale a "pending".
type CreateOrderRequest struct {
	ClientID string             `json:"client_id" validate:"required"`
	Status   string             `json:"status"`
	Lines    []OrderLineRequest `json:"lines"`
}

// OrderLinePatch una línea dentro del set deseado de un update.
// ID vacío o sin correspondencia con una línea existente = alta;
// ID de una línea existente = actualización de cantidad en sitio.
type OrderLinePatch struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// UpdateOrderRequest patch de un pedido. Cada campo distingue ausente de
// presente (puntero nil = no tocar). Lines, si viene, es el set COMPLETO
// deseado: toda línea existente ausente del patch se elimina.
type UpdateOrderRequest struct {
	ClientID *string           `json:"client_id"`
	Status   *string           `json:"status"`
	Lines    *[]OrderLinePatch `json:"lines"`
}

// OrderLineResponse salida de una línea de pedido.
type OrderLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Status    string              `json:"status"`
	CreatedBy string              `json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
	Lines     []OrderLineResponse `json:"lines"`
}

// OrderListResponse listado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}
