package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Email y CPF deben ser únicos.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if existing, _ := uc.repo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, _ := uc.repo.GetByCPF(in.CPF); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		CPF:       in.CPF,
		Whatsapp:  in.Whatsapp,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// List lista clientes con filtros por nombre/email y paginación.
func (uc *ClientUseCase) List(name, email string, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(repository.ClientFilter{Name: name, Email: email, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza solo los campos presentes. Email y CPF nuevos deben
// seguir siendo únicos respecto a otros clientes.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Email != nil {
		if existing, _ := uc.repo.GetByEmail(*in.Email); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		client.Email = *in.Email
	}
	if in.CPF != nil {
		if existing, _ := uc.repo.GetByCPF(*in.CPF); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		client.CPF = *in.CPF
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Whatsapp != nil {
		client.Whatsapp = *in.Whatsapp
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente por ID. Devuelve false si no existía.
func (uc *ClientUseCase) Delete(id string) (bool, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if client == nil {
		return false, nil
	}
	if err := uc.repo.Delete(id); err != nil {
		return false, err
	}
	return true, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Whatsapp:  c.Whatsapp,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
