package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// memProductRepo repositorio de productos en memoria, indexado por id y barcode.
type memProductRepo struct {
	byID map[string]*entity.Product
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.byID[id], nil }

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByIDs([]string) ([]*entity.Product, error)          { return nil, nil }
func (r *memProductRepo) GetByIDsForUpdate([]string) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) AdjustStock(string, int) error                         { return nil }

func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if filter.Section != "" && p.Section != filter.Section {
			continue
		}
		if filter.Available != nil && *filter.Available && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// memImageStore guarda nombres, no bytes; registra los borrados.
type memImageStore struct {
	saved   int
	deleted []string
}

func (s *memImageStore) Save(imageBase64 string) (string, error) {
	s.saved++
	return fmt.Sprintf("img-%d.png", s.saved), nil
}

func (s *memImageStore) Delete(filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

func newProductUC() (*usecase.ProductUseCase, *memProductRepo, *memImageStore) {
	repo := newMemProductRepo()
	store := &memImageStore{}
	return usecase.NewProductUseCase(repo, store), repo, store
}

func validProduct() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Description: "Café molido 500g",
		Price:       decimal.NewFromFloat(18.50),
		Barcode:     "7701234567890",
		Section:     "abarrotes",
		Stock:       10,
	}
}

func TestProductCreate_OK(t *testing.T) {
	uc, repo, _ := newProductUC()

	out, err := uc.Create(validProduct())
	require.NoError(t, err)

	assert.Equal(t, "7701234567890", out.Barcode)
	assert.Equal(t, 10, out.Stock)
	assert.Len(t, repo.byID, 1)
}

func TestProductCreate_BarcodeDuplicado(t *testing.T) {
	uc, _, _ := newProductUC()
	_, err := uc.Create(validProduct())
	require.NoError(t, err)

	dup := validProduct()
	dup.Description = "Otro producto con el mismo código"
	_, err = uc.Create(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_StockNegativo(t *testing.T) {
	uc, _, _ := newProductUC()

	in := validProduct()
	in.Stock = -1
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_VencimientoEnElPasado(t *testing.T) {
	uc, _, _ := newProductUC()

	ayer := time.Now().Add(-48 * time.Hour)
	in := validProduct()
	in.ExpirationDate = &ayer
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ImagenOpcional(t *testing.T) {
	uc, _, store := newProductUC()

	out, err := uc.Create(validProduct())
	require.NoError(t, err)
	assert.Empty(t, out.ImagePath, "sin imagen no debe guardarse nada")
	assert.Zero(t, store.saved)

	in := validProduct()
	in.Barcode = "otro-barcode"
	in.ImageBase64 = "aGVsbG8="
	out, err = uc.Create(in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ImagePath)
	assert.Equal(t, 1, store.saved)
}

func TestProductUpdate_CamposParciales(t *testing.T) {
	uc, _, _ := newProductUC()
	created, err := uc.Create(validProduct())
	require.NoError(t, err)

	desc := "Café molido premium 500g"
	precio := decimal.NewFromFloat(21.00)
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Description: &desc,
		Price:       &precio,
	})
	require.NoError(t, err)

	assert.Equal(t, desc, out.Description)
	assert.True(t, precio.Equal(out.Price))
	assert.Equal(t, created.Barcode, out.Barcode, "los campos ausentes no se tocan")
	assert.Equal(t, created.Stock, out.Stock, "update nunca toca stock")
}

func TestProductUpdate_BarcodeDeOtroProducto(t *testing.T) {
	uc, _, _ := newProductUC()
	first, err := uc.Create(validProduct())
	require.NoError(t, err)

	second := validProduct()
	second.Barcode = "1112223334445"
	other, err := uc.Create(second)
	require.NoError(t, err)

	_, err = uc.Update(other.ID, dto.UpdateProductRequest{Barcode: &first.Barcode})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Re-enviar el propio barcode sí es válido.
	_, err = uc.Update(other.ID, dto.UpdateProductRequest{Barcode: &other.Barcode})
	assert.NoError(t, err)
}

func TestProductUpdate_ImagenNuevaBorraLaAnterior(t *testing.T) {
	uc, _, store := newProductUC()

	in := validProduct()
	in.ImageBase64 = "aGVsbG8="
	created, err := uc.Create(in)
	require.NoError(t, err)

	nueva := "b3RyYQ=="
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{ImageBase64: &nueva})
	require.NoError(t, err)

	assert.NotEqual(t, created.ImagePath, out.ImagePath)
	assert.Contains(t, store.deleted, created.ImagePath)
}

func TestProductDelete(t *testing.T) {
	uc, repo, store := newProductUC()

	in := validProduct()
	in.ImageBase64 = "aGVsbG8="
	created, err := uc.Create(in)
	require.NoError(t, err)

	deleted, err := uc.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.byID)
	assert.Contains(t, store.deleted, created.ImagePath, "la imagen se borra con el producto")

	deleted, err = uc.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "borrar dos veces devuelve false sin error")
}
