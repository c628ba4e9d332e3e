package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
	"github.com/rodaplus/cotizador-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea la contraseña con bcrypt y persiste. Los
// registros públicos entran como "cliente" sin validar; un admin los valida después.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCliente
	}
	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           in.Email,
		PasswordHash:    string(hash),
		Name:            name,
		Company:         in.Company,
		Phone:           in.Phone,
		Role:            role,
		ParentPartnerID: in.ParentPartnerID,
		UserCode:        in.UserCode,
		Validated:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/contraseña, exige usuario validado y genera el JWT con el
// partner de alcance según rol (partner → él mismo; vendedor/cliente → su partner padre).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Validated {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, scopePartnerID(user), user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// scopePartnerID resuelve el partner que delimita lo que el usuario puede ver.
func scopePartnerID(u *entity.User) string {
	switch u.Role {
	case entity.RolePartner:
		return u.ID
	case entity.RoleVendedor, entity.RoleCliente:
		return u.ParentPartnerID
	}
	return ""
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
