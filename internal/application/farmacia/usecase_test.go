package farmacia_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/application/farmacia"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFarmaciaRepo struct {
	registros map[string]*entity.RegistroPendiente
	fotos     []*entity.FotoRegistro
}

func newFakeFarmaciaRepo() *fakeFarmaciaRepo {
	return &fakeFarmaciaRepo{registros: make(map[string]*entity.RegistroPendiente)}
}

func (f *fakeFarmaciaRepo) CreateRegistro(reg *entity.RegistroPendiente) error {
	f.registros[reg.ID] = reg
	return nil
}
func (f *fakeFarmaciaRepo) GetRegistro(id string) (*entity.RegistroPendiente, error) {
	reg, ok := f.registros[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}
func (f *fakeFarmaciaRepo) UpdateRegistro(reg *entity.RegistroPendiente) error {
	if _, ok := f.registros[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	f.registros[reg.ID] = reg
	return nil
}
func (f *fakeFarmaciaRepo) ListRegistros(filtro repository.RegistroFiltro) ([]*entity.RegistroPendiente, error) {
	out := make([]*entity.RegistroPendiente, 0)
	for _, reg := range f.registros {
		if filtro.Estado != "" && reg.Estado != filtro.Estado {
			continue
		}
		if filtro.Fecha != nil && !reg.Fecha.Equal(*filtro.Fecha) {
			continue
		}
		out = append(out, reg)
	}
	return out, nil
}
func (f *fakeFarmaciaRepo) AddFoto(foto *entity.FotoRegistro) error {
	f.fotos = append(f.fotos, foto)
	return nil
}
func (f *fakeFarmaciaRepo) ContarPendientes() (int64, error) {
	var n int64
	for _, reg := range f.registros {
		if reg.Estado == entity.RegistroEstadoPendiente {
			n++
		}
	}
	return n, nil
}

type fakeStorage struct {
	guardados []string
}

func (f *fakeStorage) Guardar(nombreOriginal string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	nombre := "uuid_" + nombreOriginal
	f.guardados = append(f.guardados, nombre)
	return nombre, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear registro: nace pendiente, con fecha del día y autor.
func TestCrearRegistro(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	uc := farmacia.NewPendientesUseCase(repo, &fakeStorage{})

	out, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{
		Fecha:       "2026-08-28",
		Titulo:      "Recetas sin surtir",
		Descripcion: "3 recetas del turno de la mañana",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RegistroEstadoPendiente, out.Estado)
	assert.Equal(t, "2026-08-28", out.Fecha)
	assert.Equal(t, "u1", out.CreadoPor)
	assert.Empty(t, out.Fotos)
	assert.Len(t, repo.registros, 1)
}

// Fecha mal formada o título vacío → ErrInvalidInput.
func TestCrearRegistro_DatosInvalidos(t *testing.T) {
	uc := farmacia.NewPendientesUseCase(newFakeFarmaciaRepo(), &fakeStorage{})

	_, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "28/08/2026", Titulo: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la fecha debe ser AAAA-MM-DD")

	_, err = uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "2026-08-28", Titulo: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Subir foto: guarda el archivo y asienta la foto con el autor.
func TestSubirFoto(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	st := &fakeStorage{}
	uc := farmacia.NewPendientesUseCase(repo, st)

	reg, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "2026-08-28", Titulo: "Vales sin firma"})
	require.NoError(t, err)

	foto, err := uc.SubirFoto(reg.ID, "u2", "evidencia.jpg", bytes.NewReader([]byte("jpg")))
	require.NoError(t, err)

	assert.Equal(t, "uuid_evidencia.jpg", foto.Archivo)
	assert.Equal(t, "u2", foto.SubidoPor)
	require.Len(t, repo.fotos, 1)
	assert.Equal(t, reg.ID, repo.fotos[0].RegistroID)
}

// Subir foto a un registro inexistente → ErrNotFound y no se guarda archivo.
func TestSubirFoto_RegistroInexistente(t *testing.T) {
	st := &fakeStorage{}
	uc := farmacia.NewPendientesUseCase(newFakeFarmaciaRepo(), st)

	_, err := uc.SubirFoto("no-existe", "u1", "foto.jpg", bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, st.guardados)
}

// Marcar resuelto cierra el registro; repetirlo → ErrRegistroResuelto.
func TestMarcarResuelto(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	uc := farmacia.NewPendientesUseCase(repo, &fakeStorage{})

	reg, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "2026-08-28", Titulo: "Pendiente"})
	require.NoError(t, err)

	out, err := uc.MarcarResuelto(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RegistroEstadoResuelto, out.Estado)

	_, err = uc.MarcarResuelto(reg.ID)
	assert.ErrorIs(t, err, domain.ErrRegistroResuelto)
}

// Listar filtra por estado y valida los filtros.
func TestListar(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	uc := farmacia.NewPendientesUseCase(repo, &fakeStorage{})

	r1, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "2026-08-28", Titulo: "A"})
	require.NoError(t, err)
	_, err = uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: "2026-08-28", Titulo: "B"})
	require.NoError(t, err)
	_, err = uc.MarcarResuelto(r1.ID)
	require.NoError(t, err)

	pendientes, err := uc.Listar("", entity.RegistroEstadoPendiente, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pendientes.Total)

	resueltos, err := uc.Listar("", entity.RegistroEstadoResuelto, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resueltos.Total)

	_, err = uc.Listar("", "archivado", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido debe rechazarse")

	_, err = uc.Listar("hoy", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha mal formada debe rechazarse")
}

// El conteo de pendientes refleja los cierres.
func TestContarPendientes(t *testing.T) {
	repo := newFakeFarmaciaRepo()
	uc := farmacia.NewPendientesUseCase(repo, &fakeStorage{})

	reg, err := uc.CrearRegistro("u1", dto.CreateRegistroRequest{Fecha: time.Now().Format("2006-01-02"), Titulo: "X"})
	require.NoError(t, err)

	n, err := repo.ContarPendientes()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = uc.MarcarResuelto(reg.ID)
	require.NoError(t, err)

	n, err = repo.ContarPendientes()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
