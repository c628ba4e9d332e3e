package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

func hashDe(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func buildUsers(t *testing.T) (*usecase.UserUseCase, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo(
		&entity.User{ID: "u1", Email: "garcia@ejemplo.mx", Name: "Llantera García", Role: entity.RoleCliente, PasswordHash: hashDe(t, "actual123!")},
		&entity.User{ID: "u2", Email: "sur@ejemplo.mx", Name: "Distribuidora Sur", Role: entity.RolePartner},
	)
	return usecase.NewUserUseCase(repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar / Obtener — gates de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestListar_SoloStaff(t *testing.T) {
	uc, _ := buildUsers(t)

	_, err := uc.Listar(context.Background(), entity.RolePartner, "", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Listar(context.Background(), entity.RoleSistemas, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)
}

func TestObtener_PropioPerfilSiempre(t *testing.T) {
	uc, _ := buildUsers(t)

	// Un cliente puede verse a sí mismo aunque no sea staff.
	resp, err := uc.Obtener(context.Background(), "u1", entity.RoleCliente, "u1")
	require.NoError(t, err)
	assert.Equal(t, "garcia@ejemplo.mx", resp.Email)

	// Pero no a terceros.
	_, err = uc.Obtener(context.Background(), "u1", entity.RoleCliente, "u2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Obtener(context.Background(), "adm", entity.RoleAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar — validación de cuenta y cambio de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizar_ValidarCuenta(t *testing.T) {
	uc, repo := buildUsers(t)

	validado := true
	resp, err := uc.Actualizar(context.Background(), entity.RoleAdmin, "u1", dto.UpdateUserRequest{Validated: &validado})
	require.NoError(t, err)
	assert.True(t, resp.Validated)
	assert.True(t, repo.users["u1"].Validated, "la validación debe persistirse")
}

func TestActualizar_RolInvalido_Rechaza(t *testing.T) {
	uc, _ := buildUsers(t)

	raro := "superusuario"
	_, err := uc.Actualizar(context.Background(), entity.RoleAdmin, "u1", dto.UpdateUserRequest{Role: &raro})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActualizar_NoStaff_Forbidden(t *testing.T) {
	uc, _ := buildUsers(t)

	nombre := "Otro Nombre"
	_, err := uc.Actualizar(context.Background(), entity.RolePartner, "u1", dto.UpdateUserRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarPassword_VerificaLaActual(t *testing.T) {
	uc, repo := buildUsers(t)

	err := uc.CambiarPassword(context.Background(), "u1", dto.ChangePasswordRequest{
		CurrentPassword: "equivocada",
		NewPassword:     "nueva-segura-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.CambiarPassword(context.Background(), "u1", dto.ChangePasswordRequest{
		CurrentPassword: "actual123!",
		NewPassword:     "nueva-segura-1",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("nueva-segura-1")))
}

func TestCambiarPassword_MuyCorta_Rechaza(t *testing.T) {
	uc, _ := buildUsers(t)

	err := uc.CambiarPassword(context.Background(), "u1", dto.ChangePasswordRequest{
		CurrentPassword: "actual123!",
		NewPassword:     "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetPassword_SinContrasenaActual(t *testing.T) {
	uc, repo := buildUsers(t)

	err := uc.ResetPassword(context.Background(), entity.RoleVendedor, "u1", dto.ResetPasswordRequest{NewPassword: "nueva-segura-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.ResetPassword(context.Background(), entity.RoleAdmin, "u1", dto.ResetPasswordRequest{NewPassword: "nueva-segura-1"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("nueva-segura-1")))
}

func TestEliminarUsuario_SoloAdmin(t *testing.T) {
	uc, repo := buildUsers(t)

	err := uc.Eliminar(context.Background(), entity.RoleSistemas, "u2")
	assert.ErrorIs(t, err, domain.ErrForbidden, "sistemas administra pero no borra usuarios")

	err = uc.Eliminar(context.Background(), entity.RoleAdmin, "u2")
	require.NoError(t, err)
	_, ok := repo.users["u2"]
	assert.False(t, ok)
}
