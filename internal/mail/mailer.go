package mail

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	gomail "github.com/wneessen/go-mail"
)

const senderName = "Dojo Lanza Mexicana"

// Mailer sends dues reminders to members. Verify is a pure health check: it
// proves relay reachability and credentials without sending a message.
type Mailer interface {
	SendOverdueReminder(ctx context.Context, member *model.Member, period string) error
	Verify(ctx context.Context) error
}

// SMTPMailer talks to the configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Mail.Host,
		port:     cfg.Mail.Port,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
		from:     cfg.MailFrom(),
	}
}

// SendOverdueReminder sends the fixed-template reminder for one member.
// The member must already be decrypted; the template uses the display name.
func (m *SMTPMailer) SendOverdueReminder(ctx context.Context, member *model.Member, period string) error {
	if member.Email == "" {
		return fmt.Errorf("member %d has no email address", member.ID)
	}

	body, err := renderReminder(member, period)
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(senderName, m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(member.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Recordatorio de Pago - " + senderName)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	client, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reminder to member %d: %w", member.ID, err)
	}

	return nil
}

// Verify dials the relay and authenticates, then hangs up.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	client, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial smtp relay: %w", err)
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close smtp connection: %w", err)
	}
	return nil
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	return gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
}

func renderReminder(member *model.Member, period string) (string, error) {
	var buf bytes.Buffer
	err := reminderTemplate.Execute(&buf, reminderData{
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Belt:      member.Belt,
		JoinDate:  member.JoinDate.Format("02/01/2006"),
		Period:    period,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
