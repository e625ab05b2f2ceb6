package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// ImageStore almacena la imagen del producto y devuelve su nombre de archivo.
type ImageStore interface {
	Save(imageBase64 string) (string, error)
	Delete(filename string) error
}

// ProductUseCase casos de uso CRUD para el catálogo.
// El stock inicial se fija al crear; después solo muta vía el libro de inventario.
type ProductUseCase struct {
	repo  repository.ProductRepository
	store ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, store ImageStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, store: store}
}

// Create crea un producto con imagen. Barcode debe ser único y la fecha de
// vencimiento, si viene, no puede estar en el pasado.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Reason: "no puede ser negativo"}
	}
	if err := validateExpiration(in.ExpirationDate); err != nil {
		return nil, err
	}
	if existing, _ := uc.repo.GetByBarcode(in.Barcode); existing != nil {
		return nil, domain.ErrDuplicate
	}
	var imagePath string
	if in.ImageBase64 != "" {
		var err error
		imagePath, err = uc.store.Save(in.ImageBase64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "image_base64", Reason: "imagen inválida"}
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Description:    in.Description,
		Price:          in.Price,
		Barcode:        in.Barcode,
		Section:        in.Section,
		Stock:          in.Stock,
		ExpirationDate: in.ExpirationDate,
		ImagePath:      imagePath,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		// La imagen ya quedó en disco; limpiarla si el insert falló.
		_ = uc.store.Delete(imagePath)
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de sección, rango de precio y disponibilidad.
func (uc *ProductUseCase) List(filter dto.ProductListFilter, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Section:   filter.Section,
		MinPrice:  filter.MinPrice,
		MaxPrice:  filter.MaxPrice,
		Available: filter.Available,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza solo los campos presentes. No toca Stock.
// Una imagen nueva reemplaza (y borra) la anterior.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.ExpirationDate != nil {
		if err := validateExpiration(in.ExpirationDate); err != nil {
			return nil, err
		}
		product.ExpirationDate = in.ExpirationDate
	}
	if in.Barcode != nil {
		if existing, _ := uc.repo.GetByBarcode(*in.Barcode); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Barcode = *in.Barcode
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Section != nil {
		product.Section = *in.Section
	}
	if in.ImageBase64 != nil && *in.ImageBase64 != "" {
		imagePath, err := uc.store.Save(*in.ImageBase64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "image_base64", Reason: "imagen inválida"}
		}
		old := product.ImagePath
		product.ImagePath = imagePath
		_ = uc.store.Delete(old)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto y su imagen. Devuelve false si no existía.
func (uc *ProductUseCase) Delete(id string) (bool, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	if err := uc.repo.Delete(id); err != nil {
		return false, err
	}
	_ = uc.store.Delete(product.ImagePath)
	return true, nil
}

func validateExpiration(d *time.Time) error {
	if d == nil {
		return nil
	}
	today := time.Now().Truncate(24 * time.Hour)
	if d.Before(today) {
		return &domain.ValidationError{Field: "expiration_date", Reason: "no puede estar en el pasado"}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Description:    p.Description,
		Price:          p.Price,
		Barcode:        p.Barcode,
		Section:        p.Section,
		Stock:          p.Stock,
		ExpirationDate: p.ExpirationDate,
		ImagePath:      p.ImagePath,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
