package entity

import (
	"time"

	"github.com/clinicadelvalle/ops-api/internal/domain"
)

// Estados de una cirugía programada.
const (
	CirugiaProgramada  = "programada"
	CirugiaConfirmada  = "confirmada"
	CirugiaEnQuirofano = "en_quirofano"
	CirugiaRealizada   = "realizada"
	CirugiaCancelada   = "cancelada"
)

// transicionesCirugia define el flujo permitido de estados.
// cancelada es alcanzable desde cualquier estado no terminal.
var transicionesCirugia = map[string][]string{
	CirugiaProgramada:  {CirugiaConfirmada, CirugiaCancelada},
	CirugiaConfirmada:  {CirugiaEnQuirofano, CirugiaCancelada},
	CirugiaEnQuirofano: {CirugiaRealizada, CirugiaCancelada},
	CirugiaRealizada:   {},
	CirugiaCancelada:   {},
}

// EstadoCirugiaValido indica si el literal corresponde a un estado conocido.
func EstadoCirugiaValido(estado string) bool {
	_, ok := transicionesCirugia[estado]
	return ok
}

// Cirugia es una cirugía programada en quirófano.
type Cirugia struct {
	ID string

	// Paciente
	PacienteNombre string
	Edad           int
	Sexo           string
	Telefono       string

	// Expediente y procedimiento
	FolioExpediente string
	Especialidad    string
	Procedimiento   string

	// Equipo quirúrgico
	Cirujano       string
	Anestesiologo  string
	Ayudantes      string
	Instrumentista string

	IndicacionesEspeciales string
	Estado                 string
	Programo               string // quién programó (nombre libre)
	OrdenFotoPath          string // foto de la orden quirúrgica en uploads

	FechaProgramada time.Time // día de la cirugía
	Hora            string    // "HH:MM", captura libre del formulario

	CreatedAt time.Time
	UpdatedAt time.Time

	Eventos []CirugiaEvento
}

// Transicionar cambia el estado de la cirugía validando el flujo permitido y
// devuelve el evento de auditoría correspondiente. No persiste nada.
func (c *Cirugia) Transicionar(nuevoEstado, usuario, nota string, ahora time.Time) (*CirugiaEvento, error) {
	if !EstadoCirugiaValido(nuevoEstado) {
		return nil, domain.ErrInvalidInput
	}
	permitidos := transicionesCirugia[c.Estado]
	valido := false
	for _, e := range permitidos {
		if e == nuevoEstado {
			valido = true
			break
		}
	}
	if !valido {
		return nil, domain.ErrTransicionInvalida
	}

	evento := &CirugiaEvento{
		CirugiaID:      c.ID,
		EstadoAnterior: c.Estado,
		EstadoNuevo:    nuevoEstado,
		Usuario:        usuario,
		Nota:           nota,
		CreatedAt:      ahora,
	}
	c.Estado = nuevoEstado
	c.UpdatedAt = ahora
	return evento, nil
}

// CirugiaEvento es una entrada de la bitácora de cambios de estado de una cirugía.
type CirugiaEvento struct {
	ID             string
	CirugiaID      string
	EstadoAnterior string // vacío en el evento de programación inicial
	EstadoNuevo    string
	Usuario        string // UserID
	Nota           string
	CreatedAt      time.Time
}
