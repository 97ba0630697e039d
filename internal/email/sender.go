package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

const verificationBody = `<h1>Please click on <a href="{{.Link}}">this link</a> to verify your account.</h1>`

const passwordResetBody = `<h1>Please click on <a href="{{.Link}}">this link</a> to reset your password.</h1>`

// Sender delivers transactional mail over SMTP. Sends are synchronous;
// callers decide what a failed delivery means for their operation.
type Sender struct {
	dialer    *gomail.Dialer
	from      string
	verifyTpl *template.Template
	resetTpl  *template.Template
}

func NewEmailSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		dialer:    gomail.NewDialer(host, port, username, password),
		from:      from,
		verifyTpl: template.Must(template.New("verification").Parse(verificationBody)),
		resetTpl:  template.Must(template.New("password_reset").Parse(passwordResetBody)),
	}
}

func (s *Sender) SendVerification(to, link string) error {
	body, err := renderBody(s.verifyTpl, link)
	if err != nil {
		return err
	}
	return s.sendEmail(to, "Verify Your Email Address", body)
}

func (s *Sender) SendPasswordResetLink(to, link string) error {
	body, err := renderBody(s.resetTpl, link)
	if err != nil {
		return err
	}
	return s.sendEmail(to, "Password Reset Request", body)
}

func (s *Sender) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func renderBody(tpl *template.Template, link string) (string, error) {
	buf := new(bytes.Buffer)
	if err := tpl.Execute(buf, map[string]string{"Link": link}); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}
