package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// Ensure FarmaciaRepository implements the interface.
var _ repository.FarmaciaRepository = (*FarmaciaRepository)(nil)

// FarmaciaRepository implementa repository.FarmaciaRepository con PostgreSQL.
type FarmaciaRepository struct {
	db Querier
}

// NewFarmaciaRepository construye el repositorio.
func NewFarmaciaRepository(db Querier) *FarmaciaRepository {
	return &FarmaciaRepository{db: db}
}

const registroColumns = `
	id, fecha, titulo, descripcion, estado,
	COALESCE(creado_por::text, ''), created_at, updated_at`

func scanRegistro(row pgx.Row) (*entity.RegistroPendiente, error) {
	var reg entity.RegistroPendiente
	err := row.Scan(
		&reg.ID, &reg.Fecha, &reg.Titulo, &reg.Descripcion, &reg.Estado,
		&reg.CreadoPor, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan registro: %w", err)
	}
	return &reg, nil
}

// CreateRegistro inserta un registro pendiente.
func (r *FarmaciaRepository) CreateRegistro(reg *entity.RegistroPendiente) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO farmacia_registros (id, fecha, titulo, descripcion, estado, creado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`,
		reg.ID, reg.Fecha, reg.Titulo, reg.Descripcion, reg.Estado,
		reg.CreadoPor, reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar registro: %w", err)
	}
	return nil
}

// GetRegistro obtiene un registro con sus fotos.
func (r *FarmaciaRepository) GetRegistro(id string) (*entity.RegistroPendiente, error) {
	ctx := context.Background()
	reg, err := scanRegistro(r.db.QueryRow(ctx,
		`SELECT `+registroColumns+` FROM farmacia_registros WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	fotos, err := r.fotosDeRegistros(ctx, []string{reg.ID})
	if err != nil {
		return nil, err
	}
	reg.Fotos = fotos[reg.ID]
	if reg.Fotos == nil {
		reg.Fotos = []entity.FotoRegistro{}
	}
	return reg, nil
}

// UpdateRegistro actualiza estado, título y descripción del registro.
func (r *FarmaciaRepository) UpdateRegistro(reg *entity.RegistroPendiente) error {
	tag, err := r.db.Exec(context.Background(), `
		UPDATE farmacia_registros SET
			titulo = $2, descripcion = $3, estado = $4, updated_at = $5
		WHERE id = $1`,
		reg.ID, reg.Titulo, reg.Descripcion, reg.Estado, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar registro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRegistros devuelve los registros con sus fotos cargadas.
func (r *FarmaciaRepository) ListRegistros(filtro repository.RegistroFiltro) ([]*entity.RegistroPendiente, error) {
	ctx := context.Background()

	query := `SELECT ` + registroColumns + ` FROM farmacia_registros`
	args := []any{}
	where := ""
	if filtro.Fecha != nil {
		args = append(args, *filtro.Fecha)
		where = fmt.Sprintf(` WHERE fecha = $%d`, len(args))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		if where == "" {
			where = fmt.Sprintf(` WHERE estado = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND estado = $%d`, len(args))
		}
	}
	query += where + fmt.Sprintf(`
		ORDER BY fecha DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar registros: %w", err)
	}
	defer rows.Close()

	registros := make([]*entity.RegistroPendiente, 0)
	ids := make([]string, 0)
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, err
		}
		reg.Fotos = []entity.FotoRegistro{}
		registros = append(registros, reg)
		ids = append(ids, reg.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return registros, nil
	}

	fotos, err := r.fotosDeRegistros(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, reg := range registros {
		if fs, ok := fotos[reg.ID]; ok {
			reg.Fotos = fs
		}
	}
	return registros, nil
}

// fotosDeRegistros carga las fotos de un conjunto de registros en una sola consulta.
func (r *FarmaciaRepository) fotosDeRegistros(ctx context.Context, ids []string) (map[string][]entity.FotoRegistro, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, registro_id, archivo, COALESCE(subido_por::text, ''), created_at
		FROM farmacia_fotos
		WHERE registro_id = ANY($1)
		ORDER BY created_at`, ids)
	if err != nil {
		return nil, fmt.Errorf("listar fotos: %w", err)
	}
	defer rows.Close()

	porRegistro := make(map[string][]entity.FotoRegistro)
	for rows.Next() {
		var f entity.FotoRegistro
		if err := rows.Scan(&f.ID, &f.RegistroID, &f.Archivo, &f.SubidoPor, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan foto: %w", err)
		}
		porRegistro[f.RegistroID] = append(porRegistro[f.RegistroID], f)
	}
	return porRegistro, rows.Err()
}

// AddFoto inserta una foto de evidencia.
func (r *FarmaciaRepository) AddFoto(foto *entity.FotoRegistro) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO farmacia_fotos (id, registro_id, archivo, subido_por, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)`,
		foto.ID, foto.RegistroID, foto.Archivo, foto.SubidoPor, foto.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insertar foto: %w", err)
	}
	return nil
}

// ContarPendientes cuenta los registros sin resolver.
func (r *FarmaciaRepository) ContarPendientes() (int64, error) {
	var total int64
	err := r.db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM farmacia_registros WHERE estado = $1`,
		entity.RegistroEstadoPendiente,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar pendientes: %w", err)
	}
	return total, nil
}
