// Package cirugia contiene los casos de uso de programación de cirugías y su
// bitácora de cambios de estado.
package cirugia

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
	"github.com/clinicadelvalle/ops-api/internal/domain/repository"
)

const fechaLayout = "2006-01-02"

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de cirugías atado a esa tx. El cambio de estado y su evento de
// bitácora deben persistirse atómicamente.
type TxRunner interface {
	RunCirugia(ctx context.Context, fn func(repo repository.CirugiaRepository) error) error
}

// FotoStorage guarda un archivo subido y devuelve el nombre final bajo uploads.
type FotoStorage interface {
	Guardar(nombreOriginal string, r io.Reader) (string, error)
}

// CirugiaUseCase casos de uso de quirófano.
type CirugiaUseCase struct {
	repo     repository.CirugiaRepository
	txRunner TxRunner
	storage  FotoStorage
}

// NewCirugiaUseCase construye el caso de uso. repo se usa para lecturas y el
// alta; txRunner para los cambios de estado.
func NewCirugiaUseCase(repo repository.CirugiaRepository, txRunner TxRunner, storage FotoStorage) *CirugiaUseCase {
	return &CirugiaUseCase{repo: repo, txRunner: txRunner, storage: storage}
}

// Programar da de alta una cirugía en estado "programada" y escribe el evento
// inicial de bitácora en la misma transacción.
func (uc *CirugiaUseCase) Programar(ctx context.Context, userID string, in dto.CreateCirugiaRequest) (*dto.CirugiaResponse, error) {
	fecha, err := time.Parse(fechaLayout, in.FechaProgramada)
	if err != nil || in.PacienteNombre == "" || in.Procedimiento == "" || in.Cirujano == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Hora != "" {
		if _, err := time.Parse("15:04", in.Hora); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	c := &entity.Cirugia{
		ID: uuid.New().String(),

		PacienteNombre: in.PacienteNombre,
		Edad:           in.Edad,
		Sexo:           in.Sexo,
		Telefono:       in.Telefono,

		FolioExpediente: in.FolioExpediente,
		Especialidad:    in.Especialidad,
		Procedimiento:   in.Procedimiento,

		Cirujano:       in.Cirujano,
		Anestesiologo:  in.Anestesiologo,
		Ayudantes:      in.Ayudantes,
		Instrumentista: in.Instrumentista,

		IndicacionesEspeciales: in.IndicacionesEspeciales,
		Estado:                 entity.CirugiaProgramada,
		Programo:               in.Programo,

		FechaProgramada: fecha,
		Hora:            in.Hora,

		CreatedAt: now,
		UpdatedAt: now,
	}
	evento := &entity.CirugiaEvento{
		ID:          uuid.New().String(),
		CirugiaID:   c.ID,
		EstadoNuevo: entity.CirugiaProgramada,
		Usuario:     userID,
		CreatedAt:   now,
	}

	err = uc.txRunner.RunCirugia(ctx, func(repo repository.CirugiaRepository) error {
		if err := repo.Create(c); err != nil {
			return err
		}
		return repo.AddEvento(evento)
	})
	if err != nil {
		return nil, err
	}
	return toCirugiaResponse(c, nil), nil
}

// CambiarEstado aplica una transición de estado validada por la entidad y
// persiste cirugía + evento en la misma transacción.
func (uc *CirugiaUseCase) CambiarEstado(ctx context.Context, id, userID string, in dto.CambiarEstadoRequest) (*dto.CirugiaResponse, error) {
	nota := strings.TrimSpace(in.Nota)
	var actualizada *entity.Cirugia

	err := uc.txRunner.RunCirugia(ctx, func(repo repository.CirugiaRepository) error {
		c, err := repo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		evento, err := c.Transicionar(in.Estado, userID, nota, time.Now())
		if err != nil {
			return err
		}
		evento.ID = uuid.New().String()
		if err := repo.Update(c); err != nil {
			return err
		}
		if err := repo.AddEvento(evento); err != nil {
			return err
		}
		actualizada = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCirugiaResponse(actualizada, nil), nil
}

// GetDetalle devuelve la cirugía con su bitácora completa.
func (uc *CirugiaUseCase) GetDetalle(id string) (*dto.CirugiaResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	eventos, err := uc.repo.ListEventos(id)
	if err != nil {
		return nil, err
	}
	return toCirugiaResponse(c, eventos), nil
}

// Listar devuelve cirugías filtradas por fecha y/o estado.
func (uc *CirugiaUseCase) Listar(fecha, estado string, limit, offset int) (*dto.CirugiaListResponse, error) {
	filtro := repository.CirugiaFiltro{Estado: estado, Limit: limit, Offset: offset}
	if fecha != "" {
		f, err := time.Parse(fechaLayout, fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filtro.Fecha = &f
	}
	if estado != "" && !entity.EstadoCirugiaValido(estado) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(filtro)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CirugiaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCirugiaResponse(c, nil))
	}
	return &dto.CirugiaListResponse{Items: items, Total: len(items)}, nil
}

// SubirOrdenFoto almacena la foto de la orden quirúrgica y actualiza la referencia.
func (uc *CirugiaUseCase) SubirOrdenFoto(id, nombreOriginal string, r io.Reader) (*dto.CirugiaResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	archivo, err := uc.storage.Guardar(nombreOriginal, r)
	if err != nil {
		return nil, err
	}
	c.OrdenFotoPath = archivo
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toCirugiaResponse(c, nil), nil
}

func toCirugiaResponse(c *entity.Cirugia, eventos []*entity.CirugiaEvento) *dto.CirugiaResponse {
	if c == nil {
		return nil
	}
	out := &dto.CirugiaResponse{
		ID: c.ID,

		PacienteNombre: c.PacienteNombre,
		Edad:           c.Edad,
		Sexo:           c.Sexo,
		Telefono:       c.Telefono,

		FolioExpediente: c.FolioExpediente,
		Especialidad:    c.Especialidad,
		Procedimiento:   c.Procedimiento,

		Cirujano:       c.Cirujano,
		Anestesiologo:  c.Anestesiologo,
		Ayudantes:      c.Ayudantes,
		Instrumentista: c.Instrumentista,

		IndicacionesEspeciales: c.IndicacionesEspeciales,
		Estado:                 c.Estado,
		Programo:               c.Programo,
		OrdenFoto:              c.OrdenFotoPath,

		FechaProgramada: c.FechaProgramada.Format(fechaLayout),
		Hora:            c.Hora,

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, e := range eventos {
		out.Eventos = append(out.Eventos, dto.CirugiaEventoResponse{
			ID:             e.ID,
			EstadoAnterior: e.EstadoAnterior,
			EstadoNuevo:    e.EstadoNuevo,
			Usuario:        e.Usuario,
			Nota:           e.Nota,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}
