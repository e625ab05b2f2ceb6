package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// ClientFilter filtros opcionales del listado de clientes.
// Name y Email filtran por substring; vacíos no filtran.
type ClientFilter struct {
	Name   string
	Email  string
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByEmail(email string) (*entity.Client, error)
	GetByCPF(cpf string) (*entity.Client, error)
	List(filter ClientFilter) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
