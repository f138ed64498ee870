// seed_admin crea (o restablece) el usuario administrador inicial.
//
// Uso: go run ./cmd/seed_admin -email admin@clinica.local -password <pass> [-nombre "Administración"]
// Toma la conexión a PostgreSQL de la misma configuración que la API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/infrastructure/postgres"
	"github.com/clinicadelvalle/ops-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del administrador")
	password := flag.String("password", "", "password del administrador (mínimo 8 caracteres)")
	nombre := flag.String("nombre", "Administración", "nombre a mostrar")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin -email <email> -password <password de 8+ caracteres>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "aplicar migraciones: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewUsuarioRepository(pool)
	now := time.Now()

	existente, err := repo.GetByEmail(*email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		fmt.Fprintf(os.Stderr, "consultar usuario: %v\n", err)
		os.Exit(1)
	}

	if existente != nil {
		existente.PasswordHash = string(hash)
		existente.Nombre = *nombre
		existente.Role = entity.RoleAdmin
		existente.Status = entity.UsuarioActivo
		existente.UpdatedAt = now
		if err := repo.Update(existente); err != nil {
			fmt.Fprintf(os.Stderr, "actualizar administrador: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("administrador %s restablecido\n", *email)
		return
	}

	admin := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: string(hash),
		Nombre:       *nombre,
		Role:         entity.RoleAdmin,
		Status:       entity.UsuarioActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("administrador %s creado\n", *email)
}
