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

// Ensure UsuarioRepository implements the interface.
var _ repository.UsuarioRepository = (*UsuarioRepository)(nil)

// UsuarioRepository implementa repository.UsuarioRepository con PostgreSQL.
type UsuarioRepository struct {
	db Querier
}

// NewUsuarioRepository construye el repositorio.
func NewUsuarioRepository(db Querier) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

const usuarioColumns = `id, email, password_hash, nombre, role, status, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &u, nil
}

// Create inserta un usuario nuevo.
func (r *UsuarioRepository) Create(usuario *entity.Usuario) error {
	_, err := r.db.Exec(context.Background(), `
		INSERT INTO usuarios (id, email, password_hash, nombre, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		usuario.ID, usuario.Email, usuario.PasswordHash, usuario.Nombre,
		usuario.Role, usuario.Status, usuario.CreatedAt, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por su ID.
func (r *UsuarioRepository) GetByID(id string) (*entity.Usuario, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
	return scanUsuario(row)
}

// GetByEmail obtiene un usuario por su email.
func (r *UsuarioRepository) GetByEmail(email string) (*entity.Usuario, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1`, email)
	return scanUsuario(row)
}

// Update actualiza nombre, rol y estado del usuario.
func (r *UsuarioRepository) Update(usuario *entity.Usuario) error {
	tag, err := r.db.Exec(context.Background(), `
		UPDATE usuarios SET
			email = $2, password_hash = $3, nombre = $4, role = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		usuario.ID, usuario.Email, usuario.PasswordHash, usuario.Nombre,
		usuario.Role, usuario.Status, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios ordenados por fecha de alta.
func (r *UsuarioRepository) List(limit, offset int) ([]*entity.Usuario, error) {
	rows, err := r.db.Query(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios ORDER BY created_at LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	usuarios := make([]*entity.Usuario, 0)
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}
