package cotizador

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain/ledger"
	"github.com/rodaplus/cotizador-api/pkg/logger"
)

// Estado del flujo de envío de la sesión.
type Estado int

const (
	// Idle sin envío en curso; la sesión acepta ediciones.
	Idle Estado = iota
	// ConfirmPendiente el usuario pidió enviar y falta confirmar.
	ConfirmPendiente
	// Enviando hay una petición en vuelo; todo reintento es no-op.
	Enviando
)

// NotificacionTTL vida de la notificación transitoria "cantidad actualizada".
// Variable para acortarla en pruebas.
var NotificacionTTL = 2 * time.Second

// Permisos capacidades del usuario sobre la sesión. Se pasan al construirla en lugar
// de consultar el rol por dentro: la sesión no sabe de roles, solo de capacidades.
type Permisos struct {
	EditarPrecio bool // rol cliente: false, sus cambios de precio se ignoran
}

// EnviarFunc envía el payload de la cotización al backend.
type EnviarFunc func(p ledger.Payload) error

// Sesion es una vista de cotización montada: un ledger, los permisos del usuario,
// la notificación transitoria y la máquina de estados del envío. Segura para uso
// concurrente.
type Sesion struct {
	Ledger *ledger.Ledger
	// Busqueda el buscador de productos de la vista, si hay uno montado. Se asigna
	// antes de usar la sesión; agregar una línea limpia término y resultados.
	Busqueda *Buscador[ledger.Product]

	permisos Permisos
	enviar   EnviarFunc
	log      *logger.Logger

	mu         sync.Mutex
	estado     Estado
	notifTimer *time.Timer
	notif      string
}

// NewSesion monta una sesión de cotización para un partner.
func NewSesion(partnerID string, permisos Permisos, enviar EnviarFunc, log *logger.Logger) *Sesion {
	return &Sesion{
		Ledger:   ledger.New(partnerID),
		permisos: permisos,
		enviar:   enviar,
		log:      log,
	}
}

// Estado devuelve el estado actual del flujo de envío.
func (s *Sesion) Estado() Estado {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado
}

// AgregarProducto agrega o fusiona una línea y cierra la búsqueda activa. Si
// fusionó, levanta la notificación transitoria de cantidad actualizada.
func (s *Sesion) AgregarProducto(p ledger.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == Enviando {
		return
	}
	if merged := s.Ledger.AddLine(p); merged {
		s.levantarNotif("cantidad actualizada")
	}
	if s.Busqueda != nil {
		s.Busqueda.Limpiar()
	}
}

// CambiarCantidad actualiza la cantidad de la línea i.
func (s *Sesion) CambiarCantidad(i, cantidad int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == Enviando {
		return
	}
	s.Ledger.SetQuantity(i, cantidad)
}

// CambiarPrecio actualiza el precio unitario de la línea i. Sin permiso de edición de
// precio la llamada se ignora aquí, sin tocar el ledger.
func (s *Sesion) CambiarPrecio(i int, precio decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == Enviando || !s.permisos.EditarPrecio {
		return
	}
	s.Ledger.SetUnitPrice(i, precio)
}

// CambiarCantidadTexto recibe la entrada cruda del campo de cantidad. Lo que no
// parsea como número se coacciona a 0 y el gate lo marca después.
func (s *Sesion) CambiarCantidadTexto(i int, texto string) {
	s.CambiarCantidad(i, int(dto.CoerceDecimal(texto).IntPart()))
}

// CambiarPrecioTexto recibe la entrada cruda del campo de precio.
func (s *Sesion) CambiarPrecioTexto(i int, texto string) {
	s.CambiarPrecio(i, dto.CoerceDecimal(texto))
}

// QuitarLinea elimina la línea i.
func (s *Sesion) QuitarLinea(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == Enviando {
		return
	}
	s.Ledger.RemoveLine(i)
}

// Notificacion devuelve el texto de la notificación transitoria vigente, o "".
func (s *Sesion) Notificacion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notif
}

// levantarNotif requiere s.mu. Reinicia el timer de expiración si ya había una.
func (s *Sesion) levantarNotif(msg string) {
	s.notif = msg
	if s.notifTimer != nil {
		s.notifTimer.Stop()
	}
	s.notifTimer = time.AfterFunc(NotificacionTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notif = ""
	})
}

// PedirEnvio pasa a ConfirmPendiente si el ledger pasa el gate de creación.
// Devuelve false (y no cambia de estado) si el gate falla o ya hay un envío en curso.
func (s *Sesion) PedirEnvio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado != Idle || !s.Ledger.CanGenerate() {
		return false
	}
	s.estado = ConfirmPendiente
	return true
}

// Cancelar vuelve de ConfirmPendiente a Idle. En cualquier otro estado es no-op.
func (s *Sesion) Cancelar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == ConfirmPendiente {
		s.estado = Idle
	}
}

// Confirmar dispara el envío. Solo procede desde ConfirmPendiente; clics repetidos
// mientras está Enviando son no-op, lo que garantiza a lo más un envío en vuelo.
// Éxito: ledger limpio y vuelta a Idle. Fallo: el ledger se conserva intacto para
// corregir y reintentar, y el error se devuelve al caller.
func (s *Sesion) Confirmar() error {
	s.mu.Lock()
	if s.estado != ConfirmPendiente {
		s.mu.Unlock()
		return nil
	}
	s.estado = Enviando
	payload := s.Ledger.Payload()
	s.mu.Unlock()

	err := s.enviar(payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.estado = Idle
	if err != nil {
		s.log.Error().Err(err).Str("partner_id", payload.PartnerID).Msg("fallo el envío de la cotización")
		return err
	}
	s.Ledger.Clear()
	return nil
}
