package dto

import "time"

// RegisterRequest alta de usuario (registro público o creado por admin).
type RegisterRequest struct {
	Email           string `json:"correo"`
	Password        string `json:"contrasena"`
	Name            string `json:"nombre"`
	Company         string `json:"empresa,omitempty"`
	Phone           string `json:"telefono,omitempty"`
	Role            string `json:"rol,omitempty"`
	ParentPartnerID string `json:"parent_partner_id,omitempty"`
	UserCode        string `json:"codigo_usuario,omitempty"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

// LoginResponse token emitido + datos públicos del usuario.
type LoginResponse struct {
	Token string       `json:"access_token"`
	User  UserResponse `json:"user"`
}

// UserResponse datos públicos de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"correo"`
	Name            string    `json:"nombre"`
	Company         string    `json:"empresa,omitempty"`
	Phone           string    `json:"telefono,omitempty"`
	Role            string    `json:"rol"`
	ParentPartnerID string    `json:"parent_partner_id,omitempty"`
	UserCode        string    `json:"codigo_usuario,omitempty"`
	Validated       bool      `json:"validado"`
	CreatedAt       time.Time `json:"creado_en"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Pagination PageResponse   `json:"pagination"`
}

// UpdateUserRequest edición de usuario por un administrador. Punteros = "no tocar".
type UpdateUserRequest struct {
	Name            *string `json:"nombre,omitempty"`
	Company         *string `json:"empresa,omitempty"`
	Phone           *string `json:"telefono,omitempty"`
	Role            *string `json:"rol,omitempty"`
	ParentPartnerID *string `json:"parent_partner_id,omitempty"`
	Validated       *bool   `json:"validado,omitempty"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"contrasena_actual"`
	NewPassword     string `json:"contrasena_nueva"`
}

// ResetPasswordRequest reseteo administrativo (sin contraseña actual).
type ResetPasswordRequest struct {
	NewPassword string `json:"contrasena_nueva"`
}
