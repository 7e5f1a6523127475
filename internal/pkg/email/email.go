package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"gopkg.in/gomail.v2"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendComplaintNotification(complaint *models.Complaint) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	FromName       string
	FromEmail      string
	CommitteeEmail string
	BaseURL        string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	dialer dialer
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger: logger,
	}
}

func (s *EmailServiceImpl) configured() bool {
	return s.config.Host != "" && s.config.CommitteeEmail != ""
}

// SendComplaintNotification tells the committee inbox about a new complaint.
func (s *EmailServiceImpl) SendComplaintNotification(c *models.Complaint) error {
	if !s.configured() {
		s.logger.Debug().
			Str("complaintID", c.ID).
			Msg("SMTP not configured - complaint notification not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress(), s.config.FromName)
	m.SetHeader("To", s.config.CommitteeEmail)
	m.SetHeader("Subject", fmt.Sprintf("New mess complaint: %s", c.Category))
	m.SetBody("text/plain", complaintText(c))
	m.AddAlternative("text/html", complaintHTML(c, s.config.BaseURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Str("complaintID", c.ID).Msg("Failed to send complaint notification")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().
		Str("complaintID", c.ID).
		Str("to", s.config.CommitteeEmail).
		Msg("Complaint notification sent")
	return nil
}

func (s *EmailServiceImpl) fromAddress() string {
	if s.config.FromEmail != "" {
		return s.config.FromEmail
	}
	return s.config.Username
}

func complaintText(c *models.Complaint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s\n", c.StudentName)
	fmt.Fprintf(&b, "Category: %s\n", c.Category)
	fmt.Fprintf(&b, "Submitted: %s\n\n", c.Timestamp.Format("02 Jan 2006 15:04"))
	b.WriteString(c.Description)
	b.WriteString("\n")
	if c.Image != nil {
		fmt.Fprintf(&b, "\nPhoto: %s\n", *c.Image)
	}
	return b.String()
}

func complaintHTML(c *models.Complaint, baseURL string) string {
	photo := ""
	if c.Image != nil {
		photo = fmt.Sprintf(`<p><img src="%s" alt="complaint photo" style="max-width: 100%%;"></p>`, html.EscapeString(*c.Image))
	}

	link := ""
	if baseURL != "" {
		link = fmt.Sprintf(`<p><a href="%s/api/v1/complaints?status=pending">Open pending complaints</a></p>`, html.EscapeString(strings.TrimRight(baseURL, "/")))
	}

	return fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">%s</h2>
		<p><strong>%s</strong> reported on %s:</p>
		<blockquote>%s</blockquote>
		%s
		%s
	</div>
</body>
</html>`,
		html.EscapeString(c.Category),
		html.EscapeString(c.StudentName),
		c.Timestamp.Format("02 Jan 2006 15:04"),
		html.EscapeString(c.Description),
		photo,
		link,
	)
}
