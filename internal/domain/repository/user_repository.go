package repository

import (
	"context"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

// UserFilter filtros del listado/búsqueda de usuarios.
type UserFilter struct {
	Search          string // nombre o correo, ilike
	Role            string
	ParentPartnerID string // para que un vendedor vea solo su cartera
	Limit           int
	Offset          int
}

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
