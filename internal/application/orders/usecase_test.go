package orders_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos; fakeTxRunner toma un snapshot antes de
// ejecutar el callback y lo restaura si falla, reproduciendo el rollback
// transaccional del que dependen los casos de uso.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	orders   map[string]*entity.Order // solo cabecera; las líneas van aparte
	lines    map[string]*entity.OrderLine
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		lines:    map[string]*entity.OrderLine{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.orders {
		o := *v
		o.Lines = nil
		c.orders[k] = &o
	}
	for k, v := range s.lines {
		ln := *v
		c.lines[k] = &ln
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.orders = snap.orders
	s.lines = snap.lines
}

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByIDsForUpdate(ids []string) ([]*entity.Product, error) {
	return r.GetByIDs(ids)
}

func (r *fakeProductRepo) AdjustStock(productID string, delta int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	if p.Stock+delta < 0 {
		return &domain.InsufficientStockError{ProductID: productID}
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(string) error          { return nil }

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	cp.Lines = nil
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Lines = r.linesOf(id)
	return &cp, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) linesOf(orderID string) []entity.OrderLine {
	var out []entity.OrderLine
	for _, ln := range r.s.lines {
		if ln.OrderID == orderID {
			out = append(out, *ln)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeOrderRepo) ListAll() ([]*entity.Order, error) {
	var out []*entity.Order
	for id := range r.s.orders {
		o, _ := r.GetByID(id)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListByCreator(userID string) ([]*entity.Order, error) {
	all, _ := r.ListAll()
	var out []*entity.Order
	for _, o := range all {
		if o.CreatedBy == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateHeader(o *entity.Order) error {
	stored, ok := r.s.orders[o.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "pedido", ID: o.ID}
	}
	stored.Status = o.Status
	stored.ClientID = o.ClientID
	return nil
}

func (r *fakeOrderRepo) CreateLine(ln *entity.OrderLine) error {
	cp := *ln
	r.s.lines[ln.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateLineQuantity(lineID string, quantity int) error {
	ln, ok := r.s.lines[lineID]
	if !ok {
		return &domain.NotFoundError{Entity: "línea", ID: lineID}
	}
	ln.Quantity = quantity
	return nil
}

func (r *fakeOrderRepo) DeleteLine(lineID string) error {
	delete(r.s.lines, lineID)
	return nil
}

func (r *fakeOrderRepo) DeleteLines(orderID string) error {
	for id, ln := range r.s.lines {
		if ln.OrderID == orderID {
			delete(r.s.lines, id)
		}
	}
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.s.orders, id)
	return nil
}

// fakeTxRunner ejecuta el callback sobre el store y revierte todo si falla.
type fakeTxRunner struct{ s *memStore }

var _ orders.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.ProductRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.clone()
	if err := fn(&fakeOrderRepo{s: t.s}, &fakeProductRepo{s: t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (r *fakeClientRepo) Create(*entity.Client) error { return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeClientRepo) GetByEmail(string) (*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) GetByCPF(string) (*entity.Client, error)   { return nil, nil }
func (r *fakeClientRepo) List(repository.ClientFilter) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(*entity.Client) error { return nil }
func (r *fakeClientRepo) Delete(string) error         { return nil }

// fakeNotifier registra los envíos en un canal para poder esperarlos.
type fakeNotifier struct {
	sent chan string // "destino|mensaje"
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 8)}
}

func (n *fakeNotifier) Send(to, message string) error {
	n.sent <- to + "|" + message
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	actorID   = "user-1"
	otherID   = "user-2"
	clientID  = "client-1"
	productA  = "prod-a"
	productB  = "prod-b"
	testAdmin = true
)

type scenario struct {
	store    *memStore
	uc       *orders.OrderUseCase
	notifier *fakeNotifier
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	store := newMemStore()
	store.products[productA] = &entity.Product{ID: productA, Description: "Café molido 500g", Stock: 10}
	store.products[productB] = &entity.Product{ID: productB, Description: "Azúcar 1kg", Stock: 3}

	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		clientID: {ID: clientID, Name: "María", Whatsapp: "+573001112233"},
	}}
	notifier := newFakeNotifier()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	uc := orders.NewOrderUseCase(
		&fakeTxRunner{s: store},
		&fakeOrderRepo{s: store},
		clients,
		notifier,
		log,
	)
	return &scenario{store: store, uc: uc, notifier: notifier}
}

func (s *scenario) stockOf(t *testing.T, productID string) int {
	t.Helper()
	p, ok := s.store.products[productID]
	require.True(t, ok, "el producto %s debe existir", productID)
	return p.Stock
}

func (s *scenario) createOrder(t *testing.T, lines ...dto.OrderLineRequest) *dto.OrderResponse {
	t.Helper()
	out, err := s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines:    lines,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func lineForProduct(t *testing.T, o *dto.OrderResponse, productID string) dto.OrderLineResponse {
	t.Helper()
	for _, ln := range o.Lines {
		if ln.ProductID == productID {
			return ln
		}
	}
	t.Fatalf("el pedido no tiene línea para %s", productID)
	return dto.OrderLineResponse{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockPorLinea(t *testing.T) {
	s := newScenario(t)

	out := s.createOrder(t,
		dto.OrderLineRequest{ProductID: productA, Quantity: 2},
		dto.OrderLineRequest{ProductID: productB, Quantity: 1},
	)

	assert.Equal(t, clientID, out.ClientID)
	assert.Equal(t, entity.StatusPending, out.Status, "sin status explícito debe quedar pending")
	assert.Equal(t, actorID, out.CreatedBy)
	assert.Len(t, out.Lines, 2)

	assert.Equal(t, 8, s.stockOf(t, productA))
	assert.Equal(t, 2, s.stockOf(t, productB))
}

func TestCreate_StockInsuficiente_NoPersisteNada(t *testing.T) {
	s := newScenario(t)

	_, err := s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines:    []dto.OrderLineRequest{{ProductID: productB, Quantity: 20}},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productB, stockErr.ProductID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, s.stockOf(t, productB), "el stock no debe cambiar")
	assert.Empty(t, s.store.orders, "no debe quedar cabecera de pedido")
	assert.Empty(t, s.store.lines, "no deben quedar líneas")
}

func TestCreate_ProductoInexistente_RetornaNotFound(t *testing.T) {
	s := newScenario(t)

	_, err := s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines:    []dto.OrderLineRequest{{ProductID: "prod-fantasma", Quantity: 1}},
	})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "prod-fantasma", nf.ID)
	assert.Empty(t, s.store.orders)
}

// Dos líneas del mismo producto pasan la validación individual pero el
// segundo descuento excede el stock: toda la transacción debe revertirse.
func TestCreate_FalloAMitadDeTransaccion_RevierteTodo(t *testing.T) {
	s := newScenario(t)
	s.store.products[productA].Stock = 5

	_, err := s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, Quantity: 3},
			{ProductID: productA, Quantity: 3},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, s.stockOf(t, productA), "el primer descuento debe revertirse")
	assert.Empty(t, s.store.orders)
	assert.Empty(t, s.store.lines)
}

func TestCreate_Validaciones(t *testing.T) {
	s := newScenario(t)

	_, err := s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		Lines: []dto.OrderLineRequest{{ProductID: productA, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "client_id vacío debe fallar")

	_, err = s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines:    []dto.OrderLineRequest{{ProductID: productA, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe fallar")

	_, err = s.uc.Create(context.Background(), actorID, dto.CreateOrderRequest{
		ClientID: clientID,
		Lines:    []dto.OrderLineRequest{{ProductID: "", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea sin producto debe fallar")
}

func TestCreate_NotificaAlClientePorWhatsApp(t *testing.T) {
	s := newScenario(t)

	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 1})

	select {
	case sent := <-s.notifier.sent:
		assert.True(t, strings.HasPrefix(sent, "+573001112233|"), "debe enviarse al WhatsApp del cliente")
		assert.Contains(t, sent, "María", "el mensaje debe saludar al cliente por nombre")
		assert.Contains(t, sent, out.ID, "el mensaje debe referenciar el pedido")
	case <-time.After(2 * time.Second):
		t.Fatal("el aviso de WhatsApp nunca se envió")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / List / control de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_DuenoYAdminAcceden_OtroUsuarioNo(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 1})

	got, err := s.uc.Get(out.ID, actorID, false)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	got, err = s.uc.Get(out.ID, otherID, testAdmin)
	require.NoError(t, err, "admin accede a cualquier pedido")
	assert.Equal(t, out.ID, got.ID)

	_, err = s.uc.Get(out.ID, otherID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_PedidoInexistente_RetornaNotFound(t *testing.T) {
	s := newScenario(t)

	_, err := s.uc.Get("no-existe", actorID, false)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_AdminVeTodo_UsuarioSoloLosSuyos(t *testing.T) {
	s := newScenario(t)
	mine := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 1})

	// Pedido de otro usuario, directo en el store.
	s.store.orders["order-ajeno"] = &entity.Order{
		ID: "order-ajeno", ClientID: clientID, Status: entity.StatusPending, CreatedBy: otherID,
	}

	all, err := s.uc.List(actorID, testAdmin)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	own, err := s.uc.List(actorID, false)
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.Equal(t, mine.ID, own.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: reconciliación de líneas contra stock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_AumentarCantidad_DescuentaLaDiferencia(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})
	require.Equal(t, 8, s.stockOf(t, productA))
	ln := lineForProduct(t, out, productA)

	updated, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ID: ln.ID, ProductID: productA, Quantity: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, s.stockOf(t, productA), "stock 8 - diferencia 3 = 5")
	assert.Equal(t, 5, lineForProduct(t, updated, productA).Quantity)
}

func TestUpdate_ReducirCantidad_ReponeLaDiferencia(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 5})
	require.Equal(t, 5, s.stockOf(t, productA))
	ln := lineForProduct(t, out, productA)

	_, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ID: ln.ID, ProductID: productA, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, s.stockOf(t, productA), "reducir 5→2 repone 3 unidades")
}

func TestUpdate_StockInsuficiente_NoCambiaNada(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})
	ln := lineForProduct(t, out, productA)

	_, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ID: ln.ID, ProductID: productA, Quantity: 20}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 8, s.stockOf(t, productA), "el stock debe quedar como antes del update")
	current, err := s.uc.Get(out.ID, actorID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, lineForProduct(t, current, productA).Quantity, "la línea debe quedar intacta")
}

func TestUpdate_LineaAusenteDelPatch_SeEliminaYReponeStock(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t,
		dto.OrderLineRequest{ProductID: productA, Quantity: 2},
		dto.OrderLineRequest{ProductID: productB, Quantity: 2},
	)
	require.Equal(t, 8, s.stockOf(t, productA))
	require.Equal(t, 1, s.stockOf(t, productB))
	keep := lineForProduct(t, out, productA)

	updated, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ID: keep.ID, ProductID: productA, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Lines, 1)
	assert.Equal(t, 3, s.stockOf(t, productB), "la baja debe reponer sus 2 unidades")
	assert.Equal(t, 8, s.stockOf(t, productA), "la línea sin cambios no toca stock")
}

func TestUpdate_LineaNueva_DescuentaStock(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})
	ln := lineForProduct(t, out, productA)

	updated, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{
			{ID: ln.ID, ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Lines, 2)
	assert.Equal(t, 2, s.stockOf(t, productB))
}

func TestUpdate_LineaNuevaDeProductoInexistente_RevierteElPlan(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})

	// La baja implícita de productA repondría stock, pero el alta inválida
	// debe revertir el plan completo.
	_, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ProductID: "prod-fantasma", Quantity: 1}},
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	assert.Equal(t, 8, s.stockOf(t, productA), "el stock no debe moverse")
	current, err := s.uc.Get(out.ID, actorID, false)
	require.NoError(t, err)
	assert.Len(t, current.Lines, 1, "la línea original debe sobrevivir")
}

func TestUpdate_SoloCabecera_NoTocaStock(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})

	status := "shipped"
	updated, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, 8, s.stockOf(t, productA))
	assert.Len(t, updated.Lines, 1, "sin Lines en el patch las líneas no se tocan")
}

func TestUpdate_CantidadInvalida_FallaAntesDeAbrirTransaccion(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})
	ln := lineForProduct(t, out, productA)

	_, err := s.uc.Update(context.Background(), out.ID, actorID, false, dto.UpdateOrderRequest{
		Lines: &[]dto.OrderLinePatch{{ID: ln.ID, ProductID: productA, Quantity: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 8, s.stockOf(t, productA))
}

func TestUpdate_OtroUsuarioSinAdmin_Forbidden(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 2})

	status := "shipped"
	_, err := s.uc.Update(context.Background(), out.ID, otherID, false, dto.UpdateOrderRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.uc.Update(context.Background(), out.ID, otherID, testAdmin, dto.UpdateOrderRequest{Status: &status})
	assert.NoError(t, err, "admin puede actualizar pedidos ajenos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ReponeStockDeTodasLasLineas(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t,
		dto.OrderLineRequest{ProductID: productA, Quantity: 4},
		dto.OrderLineRequest{ProductID: productB, Quantity: 2},
	)
	require.Equal(t, 6, s.stockOf(t, productA))
	require.Equal(t, 1, s.stockOf(t, productB))

	require.NoError(t, s.uc.Delete(context.Background(), out.ID, actorID, false))

	assert.Equal(t, 10, s.stockOf(t, productA))
	assert.Equal(t, 3, s.stockOf(t, productB))
	assert.Empty(t, s.store.lines, "las líneas deben eliminarse con el pedido")

	_, err := s.uc.Get(out.ID, actorID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound, "leer tras borrar debe dar not found")
}

func TestDelete_OtroUsuarioSinAdmin_Forbidden(t *testing.T) {
	s := newScenario(t)
	out := s.createOrder(t, dto.OrderLineRequest{ProductID: productA, Quantity: 1})

	err := s.uc.Delete(context.Background(), out.ID, otherID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 9, s.stockOf(t, productA), "un delete prohibido no repone stock")

	require.NoError(t, s.uc.Delete(context.Background(), out.ID, otherID, testAdmin))
	assert.Equal(t, 10, s.stockOf(t, productA))
}

func TestDelete_PedidoInexistente_RetornaNotFound(t *testing.T) {
	s := newScenario(t)

	err := s.uc.Delete(context.Background(), "no-existe", actorID, false)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
