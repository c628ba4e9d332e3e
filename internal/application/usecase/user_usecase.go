package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado, edición, validación y contraseñas.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Listar pagina usuarios con filtros de búsqueda; solo admin/sistemas.
func (uc *UserUseCase) Listar(ctx context.Context, actorRole, search, role string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if actorRole != entity.RoleAdmin && actorRole != entity.RoleSistemas {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	filter := repository.UserFilter{
		Search: search,
		Role:   role,
		Limit:  page.PerPage,
		Offset: page.Offset(),
	}
	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResponse(u))
	}
	return &dto.UserListResponse{
		Data:       out,
		Pagination: dto.NewPageResponse(page.Page, page.PerPage, total),
	}, nil
}

// Obtener devuelve un usuario por id. Un usuario siempre puede verse a sí mismo.
func (uc *UserUseCase) Obtener(ctx context.Context, actorID, actorRole, id string) (*dto.UserResponse, error) {
	if actorID != id && actorRole != entity.RoleAdmin && actorRole != entity.RoleSistemas {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

// Actualizar aplica los campos no nulos del request; solo admin/sistemas. Validar un
// usuario (Validated true) es lo que le habilita el login.
func (uc *UserUseCase) Actualizar(ctx context.Context, actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin && actorRole != entity.RoleSistemas {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.ParentPartnerID != nil {
		user.ParentPartnerID = *in.ParentPartnerID
	}
	if in.Validated != nil {
		user.Validated = *in.Validated
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// CambiarPassword cambia la contraseña del propio usuario verificando la actual.
func (uc *UserUseCase) CambiarPassword(ctx context.Context, actorID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, actorID, string(hash))
}

// ResetPassword reseteo administrativo sin contraseña actual; solo admin/sistemas.
func (uc *UserUseCase) ResetPassword(ctx context.Context, actorRole, id string, in dto.ResetPasswordRequest) error {
	if actorRole != entity.RoleAdmin && actorRole != entity.RoleSistemas {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, id, string(hash))
}

// Eliminar borra un usuario; solo admin.
func (uc *UserUseCase) Eliminar(ctx context.Context, actorRole, id string) error {
	if actorRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.userRepo.Delete(ctx, id)
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleSistemas, entity.RolePrecios,
		entity.RolePartner, entity.RoleVendedor, entity.RoleCliente:
		return true
	}
	return false
}

func userToResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Company:         u.Company,
		Phone:           u.Phone,
		Role:            u.Role,
		ParentPartnerID: u.ParentPartnerID,
		UserCode:        u.UserCode,
		Validated:       u.Validated,
		CreatedAt:       u.CreatedAt,
	}
}
