package alert

import (
	"context"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/mail"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
)

// Outcome aggregates one dispatch run. Every member attempted lands in
// exactly one bucket; unless the run is cancelled mid-way, Sent+Failed+
// NoEmail equals the number of members given.
type Outcome struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	NoEmail int `json:"noEmail"`
}

// Total returns the number of members accounted for.
func (o Outcome) Total() int {
	return o.Sent + o.Failed + o.NoEmail
}

// Dispatcher emails a set of overdue members one at a time. Sends are
// strictly sequential with a fixed pause between them; the pacing keeps the
// outbound relay's spam defenses quiet.
type Dispatcher struct {
	mailer mail.Mailer
	pause  time.Duration
}

func NewDispatcher(mailer mail.Mailer, pause time.Duration) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		pause:  pause,
	}
}

// SendBulk attempts exactly one send per member with an email address. A
// failed send is logged and counted, never retried within the run.
// Cancelling the context ends the run at the next pause; the returned
// Outcome covers the members processed up to that point.
func (d *Dispatcher) SendBulk(ctx context.Context, members []model.Member, period string) Outcome {
	log := logger.FromContext(ctx)

	var out Outcome
	for i := range members {
		m := &members[i]

		if m.Email == "" {
			out.NoEmail++
			log.Info("Miembro sin correo, omitido", "member_id", m.ID)
			continue
		}

		if err := d.mailer.SendOverdueReminder(ctx, m, period); err != nil {
			out.Failed++
			log.Error("No se pudo enviar el recordatorio",
				"member_id", m.ID,
				"email", logger.MaskEmail(m.Email),
				"error", err,
			)
		} else {
			out.Sent++
			log.Info("Recordatorio enviado", "member_id", m.ID, "email", logger.MaskEmail(m.Email))
		}

		if d.pause > 0 && i < len(members)-1 {
			select {
			case <-ctx.Done():
				log.Warn("Envío de recordatorios cancelado",
					"processed", out.Total(),
					"remaining", len(members)-i-1,
				)
				return out
			case <-time.After(d.pause):
			}
		}
	}

	return out
}
