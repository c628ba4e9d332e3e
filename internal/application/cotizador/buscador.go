package cotizador

import (
	"strings"
	"sync"
	"time"

	"github.com/rodaplus/cotizador-api/pkg/logger"
)

// DebounceDefault espera tras la última tecla antes de disparar la búsqueda.
const DebounceDefault = 500 * time.Millisecond

// MinChars mínimo de caracteres para buscar; por debajo se limpian resultados sin
// consultar.
const MinChars = 3

// SearchFunc ejecuta la búsqueda remota de un término y devuelve los resultados.
type SearchFunc[T any] func(term string) ([]T, error)

// Buscador búsqueda con debounce para un campo de texto. Cada tecla cancela el timer
// pendiente y arranca uno nuevo; cada petición emitida lleva un número de secuencia
// monótono y las respuestas viejas se descartan, de modo que una respuesta lenta
// temprana nunca pisa a una rápida posterior.
type Buscador[T any] struct {
	search SearchFunc[T]
	delay  time.Duration
	log    *logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64 // última petición emitida
	applied uint64 // última respuesta aplicada
	results []T
	wg      sync.WaitGroup
}

// NewBuscador construye un buscador. delay <= 0 usa DebounceDefault; log nil descarta.
func NewBuscador[T any](search SearchFunc[T], delay time.Duration, log *logger.Logger) *Buscador[T] {
	if delay <= 0 {
		delay = DebounceDefault
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Buscador[T]{search: search, delay: delay, log: log}
}

// Escribir registra una tecla. Términos cortos limpian los resultados de inmediato y
// cancelan cualquier disparo pendiente; términos válidos reinician el debounce.
func (b *Buscador[T]) Escribir(term string) {
	term = strings.TrimSpace(term)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len([]rune(term)) < MinChars {
		b.results = nil
		return
	}
	b.timer = time.AfterFunc(b.delay, func() {
		b.disparar(term)
	})
}

// disparar emite la petición con el siguiente número de secuencia y aplica la
// respuesta solo si sigue siendo la más reciente.
func (b *Buscador[T]) disparar(term string) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		results, err := b.search(term)
		if err != nil {
			// el fallo solo se loguea; la vista muestra resultados vacíos
			b.log.Warn().Err(err).Str("term", term).Msg("falló la búsqueda")
			results = nil
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if seq != b.seq || seq <= b.applied {
			return // respuesta vieja, descartada
		}
		b.applied = seq
		b.results = results
	}()
}

// Resultados devuelve una copia de los resultados vigentes.
func (b *Buscador[T]) Resultados() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.results))
	copy(out, b.results)
	return out
}

// Limpiar descarta el término pendiente y los resultados vigentes. Las respuestas
// que sigan en vuelo quedan viejas y no repueblan la lista.
func (b *Buscador[T]) Limpiar() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.seq++
	b.results = nil
}

// Flush espera a que terminen las peticiones en vuelo. Para pruebas.
func (b *Buscador[T]) Flush() {
	b.wg.Wait()
}

// Cerrar cancela cualquier disparo pendiente.
func (b *Buscador[T]) Cerrar() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
