// Package access implementa la política de acceso a pedidos:
// admin ve y muta todo; un usuario común solo los pedidos que creó.
package access

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// CanAccess decide si el actor puede leer o mutar el pedido.
// La regla es la misma para lectura y escritura.
func CanAccess(order *entity.Order, actorID string, isAdmin bool) bool {
	if order == nil {
		return false
	}
	return isAdmin || order.CreatedBy == actorID
}
