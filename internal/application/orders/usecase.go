// Package orders implementa el ciclo de vida del pedido y la reconciliación
// de sus líneas contra el stock. Toda mutación (crear, actualizar, borrar)
// corre dentro de una única transacción: o se confirman todas las líneas y
// todos los ajustes de stock, o ninguno.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/access"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// OrderUseCase gestiona pedidos y su impacto en inventario.
type OrderUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository // atado al pool, solo lecturas
	clientRepo repository.ClientRepository
	notifier   Notifier
	log        *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	notifier Notifier,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		notifier:   notifier,
		log:        log,
	}
}

// Create crea un pedido con sus líneas, descontando stock por cada una.
// Valida disponibilidad en lote antes de escribir nada; cualquier fallo
// posterior revierte cabecera, líneas y descuentos ya aplicados.
func (uc *OrderUseCase) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ClientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "es requerido"}
	}
	for _, ln := range in.Lines {
		if ln.ProductID == "" {
			return nil, &domain.ValidationError{Field: "product_id", Reason: "es requerido"}
		}
		if ln.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser mayor que cero"}
		}
	}

	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	order := &entity.Order{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Status:    status,
		CreatedAt: time.Now(),
		CreatedBy: actorID,
	}
	for _, ln := range in.Lines {
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
		})
	}

	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		led := inventory.NewLedger(productRepo)

		requested := make([]inventory.Line, 0, len(order.Lines))
		for _, ln := range order.Lines {
			requested = append(requested, inventory.Line{ProductID: ln.ProductID, Quantity: ln.Quantity})
		}
		if err := led.ValidateAvailability(requested); err != nil {
			return err
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Lines {
			if err := orderRepo.CreateLine(&order.Lines[i]); err != nil {
				return err
			}
			if err := led.Adjust(order.Lines[i].ProductID, -order.Lines[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Aviso al cliente fuera de la transacción; nunca falla el create.
	go uc.notifyCreated(order.ID, order.ClientID)

	return toOrderResponse(order), nil
}

// Get devuelve un pedido si el actor es admin o su creador.
func (uc *OrderUseCase) Get(orderID, actorID string, isAdmin bool) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{Entity: "pedido", ID: orderID}
	}
	if !access.CanAccess(order, actorID, isAdmin) {
		return nil, domain.ErrForbidden
	}
	return toOrderResponse(order), nil
}

// List devuelve todos los pedidos para admin; solo los propios para el resto.
func (uc *OrderUseCase) List(actorID string, isAdmin bool) (*dto.OrderListResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if isAdmin {
		list, err = uc.orderRepo.ListAll()
	} else {
		list, err = uc.orderRepo.ListByCreator(actorID)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items}, nil
}

// Update aplica un patch sobre el pedido. Status y ClientID se aplican si
// vienen; Lines, si viene, es el set completo deseado y se reconcilia contra
// las líneas actuales (bajas reponen stock, cambios ajustan por diferencia,
// altas descuentan). Todo dentro de una transacción.
func (uc *OrderUseCase) Update(ctx context.Context, orderID, actorID string, isAdmin bool, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Lines != nil {
		for _, p := range *in.Lines {
			if p.Quantity <= 0 {
				return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser mayor que cero"}
			}
		}
	}

	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Entity: "pedido", ID: orderID}
		}
		if !access.CanAccess(order, actorID, isAdmin) {
			return domain.ErrForbidden
		}

		if in.Status != nil {
			order.Status = *in.Status
		}
		if in.ClientID != nil {
			order.ClientID = *in.ClientID
		}
		if in.Status != nil || in.ClientID != nil {
			if err := orderRepo.UpdateHeader(order); err != nil {
				return err
			}
		}

		if in.Lines != nil {
			led := inventory.NewLedger(productRepo)
			if err := reconcileLines(orderRepo, led, order, *in.Lines); err != nil {
				return err
			}
		}

		updated, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		out = toOrderResponse(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete repone el stock de todas las líneas y elimina el pedido con ellas,
// como unidad atómica.
func (uc *OrderUseCase) Delete(ctx context.Context, orderID, actorID string, isAdmin bool) error {
	return uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Entity: "pedido", ID: orderID}
		}
		if !access.CanAccess(order, actorID, isAdmin) {
			return domain.ErrForbidden
		}

		led := inventory.NewLedger(productRepo)
		for _, ln := range order.Lines {
			if err := led.Adjust(ln.ProductID, ln.Quantity); err != nil {
				return err
			}
		}
		if err := orderRepo.DeleteLines(orderID); err != nil {
			return err
		}
		return orderRepo.Delete(orderID)
	})
}

// reconcileLines lleva las líneas del pedido al set deseado.
// Orden de aplicación: primero bajas (reponen stock), luego cambios de
// cantidad y altas (consumen). El UPDATE condicional del libro es la guarda
// final contra stock negativo; cualquier fallo revierte el plan entero.
func reconcileLines(orderRepo repository.OrderRepository, led *inventory.Ledger, order *entity.Order, desired []dto.OrderLinePatch) error {
	current := make(map[string]*entity.OrderLine, len(order.Lines))
	for i := range order.Lines {
		current[order.Lines[i].ID] = &order.Lines[i]
	}

	var updates, additions []dto.OrderLinePatch
	desiredIDs := make(map[string]bool, len(desired))
	for _, p := range desired {
		if _, ok := current[p.ID]; ok {
			desiredIDs[p.ID] = true
			updates = append(updates, p)
		} else {
			additions = append(additions, p)
		}
	}
	var removals []*entity.OrderLine
	for id, ln := range current {
		if !desiredIDs[id] {
			removals = append(removals, ln)
		}
	}

	// Una sola lectura por lote, con bloqueo de fila, para todo el plan.
	idSet := make(map[string]bool)
	for _, ln := range removals {
		idSet[ln.ProductID] = true
	}
	for _, p := range updates {
		idSet[current[p.ID].ProductID] = true
	}
	for _, p := range additions {
		idSet[p.ProductID] = true
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	products, err := led.Snapshot(ids)
	if err != nil {
		return err
	}
	for _, p := range additions {
		if products[p.ProductID] == nil {
			return &domain.NotFoundError{Entity: "producto", ID: p.ProductID}
		}
	}

	// Bajas: reponer stock antes de borrar la línea.
	for _, ln := range removals {
		if err := led.Adjust(ln.ProductID, ln.Quantity); err != nil {
			return err
		}
		if err := orderRepo.DeleteLine(ln.ID); err != nil {
			return err
		}
	}

	// Cambios en sitio: ajustar por la diferencia (negativa repone).
	// El producto de una línea existente es inmutable; solo cambia la cantidad.
	for _, p := range updates {
		ln := current[p.ID]
		diff := p.Quantity - ln.Quantity
		if diff != 0 {
			if err := led.Adjust(ln.ProductID, -diff); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateLineQuantity(ln.ID, p.Quantity); err != nil {
			return err
		}
	}

	// Altas: descontar la cantidad completa.
	for _, p := range additions {
		newLine := &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		}
		if err := orderRepo.CreateLine(newLine); err != nil {
			return err
		}
		if err := led.Adjust(p.ProductID, -p.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// notifyCreated envía el aviso de pedido creado por WhatsApp si el cliente
// tiene contacto. Mejor esfuerzo: los errores se loguean y se descartan.
func (uc *OrderUseCase) notifyCreated(orderID, clientID string) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo cargar el cliente para notificar")
		return
	}
	if client == nil || client.Whatsapp == "" {
		return
	}
	msg := fmt.Sprintf("Hola %s, tu pedido #%s fue creado con éxito. ¡Gracias por tu preferencia!", client.Name, orderID)
	if err := uc.notifier.Send(client.Whatsapp, msg); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("fallo el aviso de pedido creado")
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, ln := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{ID: ln.ID, ProductID: ln.ProductID, Quantity: ln.Quantity})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		Lines:     lines,
	}
}
