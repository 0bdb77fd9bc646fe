package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gastos-service/internal/config"
	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/utils"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBillReminder tells a user that a monthly bill is due. Without an SMTP
// host the reminder is only logged.
func (s *Sender) SendBillReminder(to, name string, bill models.Bill, due time.Time) error {
	e := s.billReminder(to, name, bill, due)

	if !s.cfg.EmailEnabled() {
		s.logger.WithFields(logrus.Fields{
			"to":      to,
			"bill_id": bill.ID,
			"due":     utils.FormatDate(due),
		}).Info("SMTP not configured, reminder not sent")
		return nil
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) billReminder(to, name string, bill models.Bill, due time.Time) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Lembrete: %s vence hoje", bill.Titulo)

	body := fmt.Sprintf("Olá %s,\n\n", name)
	body += fmt.Sprintf(
		"A conta \"%s\" no valor de R$ %s vence em %s.\n"+
			"Não esqueça de registrar o pagamento.\n",
		bill.Titulo, bill.Valor.StringFixed(2), due.Format(utils.WireDateLayout),
	)
	body += "\nAtenciosamente,\nGastos"
	e.Text = []byte(body)
	return e
}
