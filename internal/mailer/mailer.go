// Package mailer sends transactional email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"cesizen/api/internal/config"
)

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Réinitialisation de votre mot de passe</h2>
	<p>Bonjour {{.FirstName}},</p>
	<p>Vous avez demandé la réinitialisation de votre mot de passe CESIZen.</p>
	<p>Cliquez sur le lien ci-dessous pour définir un nouveau mot de passe :</p>
	<p>
		<a href="{{.ResetURL}}"
			style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">
			Réinitialiser mon mot de passe
		</a>
	</p>
	<p>Ce lien expirera dans 1 heure.</p>
	<p>Si vous n'avez pas demandé cette réinitialisation, veuillez ignorer cet email.</p>
	<p>Cordialement,<br>L'équipe CESIZen</p>
</div>
`))

type SMTPMailer struct {
	client      *mail.Client
	from        string
	frontendURL string
}

func New(cfg config.SMTPConfig, frontendURL string) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client:      client,
		from:        cfg.From,
		frontendURL: frontendURL,
	}, nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, firstName, token string) error {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, struct {
		FirstName string
		ResetURL  string
	}{
		FirstName: firstName,
		ResetURL:  fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token),
	})
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject("Réinitialisation de votre mot de passe CESIZen")
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
