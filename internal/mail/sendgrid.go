package mail

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/infopontes/leishai-backend/internal/config"
)

// Sender envia e-mails transacionais. Falha de envio é registrada e
// engolida: o chamador nunca expõe erro do provedor ao usuário final.
type Sender interface {
	SendPasswordReset(toEmail, resetURL string) error
	SendAccountActivation(toEmail, activationURL string) error
}

type SendgridSender struct {
	apiKey   string
	from     string
	fromName string
}

// NewSender devolve um sender nulo quando a chave não está configurada
// ou em modo de teste.
func NewSender(cfg *config.Config) Sender {
	if cfg.Testing || cfg.SendgridAPIKey == "" {
		return NoopSender{}
	}
	return &SendgridSender{
		apiKey:   cfg.SendgridAPIKey,
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}
}

func (s *SendgridSender) SendPasswordReset(toEmail, resetURL string) error {
	html := fmt.Sprintf(
		"<p>We received a request to reset your password.</p>"+
			"<p><a href=%q>Reset your password</a></p>"+
			"<p>If you didn't request this, you can ignore this email.</p>",
		resetURL,
	)
	return s.send(toEmail, "Reset your password", html)
}

func (s *SendgridSender) SendAccountActivation(toEmail, activationURL string) error {
	html := fmt.Sprintf(
		"<p>Your account was created and needs activation.</p>"+
			"<p><a href=%q>Activate your account</a></p>",
		activationURL,
	)
	return s.send(toEmail, "Activate your account", html)
}

func (s *SendgridSender) send(toEmail, subject, html string) error {
	from := sgmail.NewEmail(s.fromName, s.from)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", html)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("sendgrid: failed to send email: %v", err)
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("sendgrid: non-2xx response: %d", resp.StatusCode)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// NoopSender apenas registra o que teria sido enviado.
type NoopSender struct{}

func (NoopSender) SendPasswordReset(toEmail, resetURL string) error {
	log.Printf("mail (noop): password reset for %s -> %s", toEmail, resetURL)
	return nil
}

func (NoopSender) SendAccountActivation(toEmail, activationURL string) error {
	log.Printf("mail (noop): account activation for %s -> %s", toEmail, activationURL)
	return nil
}
