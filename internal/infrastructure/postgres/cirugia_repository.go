package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Ensure CirugiaRepository implements the interface.
var _ repository.CirugiaRepository = (*CirugiaRepository)(nil)

// CirugiaRepository implementa repository.CirugiaRepository con PostgreSQL.
type CirugiaRepository struct {
	db Querier
}

// NewCirugiaRepository construye el repositorio.
func NewCirugiaRepository(db Querier) *CirugiaRepository {
	return &CirugiaRepository{db: db}
}

const cirugiaColumns = `
	id, paciente_nombre, edad, sexo, telefono,
	folio_expediente, especialidad, procedimiento,
	cirujano, anestesiologo, ayudantes, instrumentista,
	indicaciones_especiales, estado, programo, orden_foto_path,
	fecha_programada, hora, created_at, updated_at`

func scanCirugia(row pgx.Row) (*entity.Cirugia, error) {
	var c entity.Cirugia
	err := row.Scan(
		&c.ID, &c.PacienteNombre, &c.Edad, &c.Sexo, &c.Telefono,
		&c.FolioExpediente, &c.Especialidad, &c.Procedimiento,
		&c.Cirujano, &c.Anestesiologo, &c.Ayudantes, &c.Instrumentista,
		&c.IndicacionesEspeciales, &c.Estado, &c.Programo, &c.OrdenFotoPath,
		&c.FechaProgramada, &c.Hora, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cirugia: %w", err)
	}
	return &c, nil
}

// Create inserta una cirugía programada.
func (r *CirugiaRepository) Create(cirugia *entity.Cirugia) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO cirugias (
			id, paciente_nombre, edad, sexo, telefono,
			folio_expediente, especialidad, procedimiento,
			cirujano, anestesiologo, ayudantes, instrumentista,
			indicaciones_especiales, estado, programo, orden_foto_path,
			fecha_programada, hora, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20
		)`,
		cirugia.ID, cirugia.PacienteNombre, cirugia.Edad, cirugia.Sexo, cirugia.Telefono,
		cirugia.FolioExpediente, cirugia.Especialidad, cirugia.Procedimiento,
		cirugia.Cirujano, cirugia.Anestesiologo, cirugia.Ayudantes, cirugia.Instrumentista,
		cirugia.IndicacionesEspeciales, cirugia.Estado, cirugia.Programo, cirugia.OrdenFotoPath,
		cirugia.FechaProgramada, cirugia.Hora, cirugia.CreatedAt, cirugia.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar cirugia: %w", err)
	}
	return nil
}

// GetByID obtiene una cirugía por su ID (sin eventos).
func (r *CirugiaRepository) GetByID(id string) (*entity.Cirugia, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+cirugiaColumns+` FROM cirugias WHERE id = $1`, id)
	return scanCirugia(row)
}

// GetForUpdate obtiene la cirugía bloqueando la fila para el cambio de estado.
func (r *CirugiaRepository) GetForUpdate(id string) (*entity.Cirugia, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+cirugiaColumns+` FROM cirugias WHERE id = $1 FOR UPDATE`, id)
	return scanCirugia(row)
}

// Update actualiza los campos editables y el estado de la cirugía.
func (r *CirugiaRepository) Update(cirugia *entity.Cirugia) error {
	tag, err := r.db.Exec(context.Background(), `
		UPDATE cirugias SET
			paciente_nombre = $2, edad = $3, sexo = $4, telefono = $5,
			folio_expediente = $6, especialidad = $7, procedimiento = $8,
			cirujano = $9, anestesiologo = $10, ayudantes = $11, instrumentista = $12,
			indicaciones_especiales = $13, estado = $14, programo = $15, orden_foto_path = $16,
			fecha_programada = $17, hora = $18, updated_at = $19
		WHERE id = $1`,
		cirugia.ID, cirugia.PacienteNombre, cirugia.Edad, cirugia.Sexo, cirugia.Telefono,
		cirugia.FolioExpediente, cirugia.Especialidad, cirugia.Procedimiento,
		cirugia.Cirujano, cirugia.Anestesiologo, cirugia.Ayudantes, cirugia.Instrumentista,
		cirugia.IndicacionesEspeciales, cirugia.Estado, cirugia.Programo, cirugia.OrdenFotoPath,
		cirugia.FechaProgramada, cirugia.Hora, cirugia.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar cirugia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cirugías filtradas por día y estado, ordenadas por fecha y hora.
func (r *CirugiaRepository) List(filtro repository.CirugiaFiltro) ([]*entity.Cirugia, error) {
	query := `SELECT ` + cirugiaColumns + ` FROM cirugias`
	args := []any{}
	where := ""
	if filtro.Fecha != nil {
		args = append(args, *filtro.Fecha)
		where = fmt.Sprintf(` WHERE fecha_programada = $%d`, len(args))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		if where == "" {
			where = fmt.Sprintf(` WHERE estado = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND estado = $%d`, len(args))
		}
	}
	limit := filtro.Limit
	if limit <= 0 {
		limit = 50
	}
	query += where + fmt.Sprintf(`
		ORDER BY fecha_programada DESC, hora ASC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filtro.Offset)

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar cirugias: %w", err)
	}
	defer rows.Close()

	cirugias := make([]*entity.Cirugia, 0)
	for rows.Next() {
		c, err := scanCirugia(rows)
		if err != nil {
			return nil, err
		}
		cirugias = append(cirugias, c)
	}
	return cirugias, rows.Err()
}

// AddEvento inserta un evento de bitácora.
func (r *CirugiaRepository) AddEvento(evento *entity.CirugiaEvento) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO cirugia_eventos (id, cirugia_id, estado_anterior, estado_nuevo, usuario, nota, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7)`,
		evento.ID, evento.CirugiaID, evento.EstadoAnterior, evento.EstadoNuevo,
		evento.Usuario, evento.Nota, evento.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insertar evento: %w", err)
	}
	return nil
}

// ListEventos devuelve la bitácora de una cirugía en orden cronológico.
func (r *CirugiaRepository) ListEventos(cirugiaID string) ([]*entity.CirugiaEvento, error) {
	rows, err := r.db.Query(context.Background(), `
		SELECT id, cirugia_id, estado_anterior, estado_nuevo,
		       COALESCE(usuario::text, ''), nota, created_at
		FROM cirugia_eventos
		WHERE cirugia_id = $1
		ORDER BY created_at`, cirugiaID)
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	defer rows.Close()

	eventos := make([]*entity.CirugiaEvento, 0)
	for rows.Next() {
		var e entity.CirugiaEvento
		err := rows.Scan(
			&e.ID, &e.CirugiaID, &e.EstadoAnterior, &e.EstadoNuevo,
			&e.Usuario, &e.Nota, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evento: %w", err)
		}
		eventos = append(eventos, &e)
	}
	return eventos, rows.Err()
}

// ContarPorEstado cuenta cirugías agrupadas por estado, opcionalmente de un día.
func (r *CirugiaRepository) ContarPorEstado(fecha *time.Time) (map[string]int64, error) {
	query := `SELECT estado, COUNT(*) FROM cirugias`
	args := []any{}
	if fecha != nil {
		query += ` WHERE fecha_programada = $1`
		args = append(args, *fecha)
	}
	query += ` GROUP BY estado`

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("contar cirugias por estado: %w", err)
	}
	defer rows.Close()

	conteos := make(map[string]int64)
	for rows.Next() {
		var estado string
		var total int64
		if err := rows.Scan(&estado, &total); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		conteos[estado] = total
	}
	return conteos, rows.Err()
}
