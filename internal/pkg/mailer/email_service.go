package mailer

import (
	"fmt"
	"html"
	"strings"

	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/rag/response"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOnboarding(toEmail, name, plan string) error
}

// Sender is the part of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return NewEmailServiceWithSender(d, username, senderName, log)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		sender:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

// BuildOnboardingMessage renders the welcome mail carrying the plan's onboarding checklist.
func BuildOnboardingMessage(from, fromName, toEmail, name, plan string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to AutoStream: your onboarding checklist")

	m.SetBody("text/html", onboardingBody(name, plan))
	return m
}

func onboardingBody(name, plan string) string {
	var steps strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(response.OnboardingSteps(plan)), "\n") {
		steps.WriteString("<li>" + html.EscapeString(strings.TrimSpace(line)) + "</li>")
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s, welcome to AutoStream!</h2>
			<p>%s</p>
			<ul>%s</ul>
			<p>Reply to this email if you need a hand getting set up.</p>
		</div>
	`, html.EscapeString(name), html.EscapeString(response.PlanPitch(plan)), steps.String())
}

func (s *emailService) SendOnboarding(toEmail, name, plan string) error {
	m := BuildOnboardingMessage(s.senderEmail, s.senderName, toEmail, name, plan)

	if err := s.sender.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send onboarding email", map[string]interface{}{
			"to":    toEmail,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("Mailer", "Onboarding email sent", map[string]interface{}{"to": toEmail, "plan": plan})
	return nil
}
