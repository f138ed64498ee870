// Package farmacia contiene los casos de uso de los registros pendientes de
// papelería de farmacia y su evidencia fotográfica.
package farmacia

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

const fechaLayout = "2006-01-02"

// FotoStorage guarda un archivo subido y devuelve el nombre final bajo uploads.
type FotoStorage interface {
	Guardar(nombreOriginal string, r io.Reader) (string, error)
}

// PendientesUseCase casos de uso de registros pendientes.
type PendientesUseCase struct {
	repo    repository.FarmaciaRepository
	storage FotoStorage
}

// NewPendientesUseCase construye el caso de uso.
func NewPendientesUseCase(repo repository.FarmaciaRepository, storage FotoStorage) *PendientesUseCase {
	return &PendientesUseCase{repo: repo, storage: storage}
}

// CrearRegistro da de alta un pendiente para una fecha.
func (uc *PendientesUseCase) CrearRegistro(userID string, in dto.CreateRegistroRequest) (*dto.RegistroResponse, error) {
	fecha, err := time.Parse(fechaLayout, in.Fecha)
	if err != nil || in.Titulo == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	reg := &entity.RegistroPendiente{
		ID:          uuid.New().String(),
		Fecha:       fecha,
		Titulo:      in.Titulo,
		Descripcion: in.Descripcion,
		Estado:      entity.RegistroEstadoPendiente,
		CreadoPor:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateRegistro(reg); err != nil {
		return nil, err
	}
	return toRegistroResponse(reg), nil
}

// SubirFoto adjunta una foto de evidencia al registro.
func (uc *PendientesUseCase) SubirFoto(registroID, userID, nombreOriginal string, r io.Reader) (*dto.FotoRegistroResponse, error) {
	reg, err := uc.repo.GetRegistro(registroID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	archivo, err := uc.storage.Guardar(nombreOriginal, r)
	if err != nil {
		return nil, err
	}
	foto := &entity.FotoRegistro{
		ID:         uuid.New().String(),
		RegistroID: registroID,
		Archivo:    archivo,
		SubidoPor:  userID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.AddFoto(foto); err != nil {
		return nil, err
	}
	return &dto.FotoRegistroResponse{
		ID:        foto.ID,
		Archivo:   foto.Archivo,
		SubidoPor: foto.SubidoPor,
		CreatedAt: foto.CreatedAt,
	}, nil
}

// Listar devuelve registros filtrados por fecha y/o estado, con sus fotos.
func (uc *PendientesUseCase) Listar(fecha, estado string, limit, offset int) (*dto.RegistroListResponse, error) {
	filtro := repository.RegistroFiltro{Estado: estado, Limit: limit, Offset: offset}
	if fecha != "" {
		f, err := time.Parse(fechaLayout, fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filtro.Fecha = &f
	}
	if estado != "" && estado != entity.RegistroEstadoPendiente && estado != entity.RegistroEstadoResuelto {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListRegistros(filtro)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegistroResponse, 0, len(list))
	for _, reg := range list {
		items = append(items, *toRegistroResponse(reg))
	}
	return &dto.RegistroListResponse{Items: items, Total: len(items)}, nil
}

// MarcarResuelto cierra un registro pendiente. Falla si ya estaba resuelto.
func (uc *PendientesUseCase) MarcarResuelto(id string) (*dto.RegistroResponse, error) {
	reg, err := uc.repo.GetRegistro(id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if reg.Estado == entity.RegistroEstadoResuelto {
		return nil, domain.ErrRegistroResuelto
	}
	reg.Estado = entity.RegistroEstadoResuelto
	reg.UpdatedAt = time.Now()
	if err := uc.repo.UpdateRegistro(reg); err != nil {
		return nil, err
	}
	return toRegistroResponse(reg), nil
}

func toRegistroResponse(reg *entity.RegistroPendiente) *dto.RegistroResponse {
	fotos := make([]dto.FotoRegistroResponse, 0, len(reg.Fotos))
	for _, f := range reg.Fotos {
		fotos = append(fotos, dto.FotoRegistroResponse{
			ID:        f.ID,
			Archivo:   f.Archivo,
			SubidoPor: f.SubidoPor,
			CreatedAt: f.CreatedAt,
		})
	}
	return &dto.RegistroResponse{
		ID:          reg.ID,
		Fecha:       reg.Fecha.Format(fechaLayout),
		Titulo:      reg.Titulo,
		Descripcion: reg.Descripcion,
		Estado:      reg.Estado,
		CreadoPor:   reg.CreadoPor,
		CreatedAt:   reg.CreatedAt,
		UpdatedAt:   reg.UpdatedAt,
		Fotos:       fotos,
	}
}
