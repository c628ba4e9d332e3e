package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

var _ usecase.CotizacionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCotizacion inicia una transacción, ejecuta fn con un repositorio de cotizaciones
// atado a la tx y hace Commit o Rollback. Cabecera y líneas se escriben atómicamente.
func (r *TxRunner) RunCotizacion(ctx context.Context, fn func(repo repository.CotizacionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCotizacionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
