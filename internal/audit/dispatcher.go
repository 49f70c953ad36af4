package audit

import (
	"log"

	"github.com/google/uuid"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Dispatcher grava eventos de auditoria fora do caminho da requisição.
// Fila cheia descarta o evento: auditoria nunca derruba a API.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
