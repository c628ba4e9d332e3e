package entity

import "time"

// Roles de usuario. "partner" es el distribuidor mayorista; sus vendedores cuelgan de él
// vía ParentPartnerID. "cliente" solo ve sus propias cotizaciones y no edita precios.
const (
	RoleAdmin    = "admin"
	RoleSistemas = "sistemas"
	RolePrecios  = "precios"
	RolePartner  = "partner"
	RoleVendedor = "vendedor"
	RoleCliente  = "cliente"
)

// User representa un usuario de la plataforma (staff o cliente mayorista).
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	Company         string
	Phone           string
	Role            string
	ParentPartnerID string // partner padre para vendedores y clientes de cartera
	UserCode        string // código de usuario en el ERP (opcional)
	Validated       bool   // los usuarios sin validar no pueden iniciar sesión
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanViewAllQuotations indica si el rol ve todas las cotizaciones sin filtro.
func (u *User) CanViewAllQuotations() bool {
	return u.Role == RoleAdmin || u.Role == RoleSistemas
}
