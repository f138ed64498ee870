package inventario

import (
	"context"
	"io"

	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del motor de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}

// FotoStorage guarda un archivo subido y devuelve el nombre final bajo uploads.
type FotoStorage interface {
	Guardar(nombreOriginal string, r io.Reader) (string, error)
}
