package email

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/config"
	"github.com/Dan9191/bank-clients/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
	now    func() time.Time
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	s.send = s.smtpSend
	return s
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := s.cfg.SMTPHost + ":" + strconv.Itoa(s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// SendOverdueDigest mails the list of overdue loans to the risk desk
func (s *Sender) SendOverdueDigest(to string, loans []models.Loan) error {
	e := s.overdueDigest(to, loans)
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send overdue digest to %s: %v", to, err)
		return fmt.Errorf("failed to send overdue digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) overdueDigest(to string, loans []models.Loan) *email.Email {
	today := s.now().Format(time.DateOnly)

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Overdue loans digest for %s: %d loan(s)", today, len(loans))

	var total float64
	var body strings.Builder
	fmt.Fprintf(&body, "Overdue loans as of %s.\n\n", today)
	for _, l := range loans {
		fmt.Fprintf(&body, "Loan %d, client %d: %.2f RUB overdue of %.2f RUB, due %s\n",
			l.ID, l.ClientID, l.OverdueAmount, l.Amount, l.EndDate)
		total += l.OverdueAmount
	}
	fmt.Fprintf(&body, "\nTotal overdue: %.2f RUB\n", total)
	body.WriteString("\nBest regards,\nBank Service")
	e.Text = []byte(body.String())

	return e
}
