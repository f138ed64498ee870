// Package storage guarda los archivos subidos (fotos de evidencia, órdenes
// quirúrgicas, imágenes de producto) en el directorio de uploads local.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalFotoStorage guarda archivos en un directorio local. El nombre final
// lleva un prefijo UUID para evitar colisiones entre subidas con el mismo nombre.
type LocalFotoStorage struct {
	dir string
}

// NewLocalFotoStorage crea el directorio si no existe.
func NewLocalFotoStorage(dir string) (*LocalFotoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalFotoStorage{dir: dir}, nil
}

// Guardar escribe el archivo y devuelve el nombre final (sin el directorio).
func (s *LocalFotoStorage) Guardar(nombreOriginal string, r io.Reader) (string, error) {
	nombre := uuid.New().String() + "_" + SanitizarNombre(nombreOriginal)

	f, err := os.Create(filepath.Join(s.dir, nombre))
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return nombre, nil
}

// SanitizarNombre reduce un nombre de archivo subido a un nombre seguro:
// descarta cualquier ruta y deja solo [A-Za-z0-9._-], reemplazando el resto
// por guion bajo. Un nombre que queda vacío se sustituye por "archivo".
func SanitizarNombre(nombre string) string {
	nombre = filepath.Base(strings.ReplaceAll(nombre, "\\", "/"))

	var b strings.Builder
	for _, r := range nombre {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	limpio := strings.Trim(b.String(), "._")
	if limpio == "" {
		return "archivo"
	}
	return limpio
}
