package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"codequest/resume-validator/internal/models"
)

// MailerService sends the approval notice with login credentials once a
// registration has been verified. It shares the host process with the
// pipeline but plays no part in its control flow.
type MailerService interface {
	SendApprovalEmail(req models.ApprovalEmailRequest) error
}

type smtpMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	tmpl     *template.Template
}

const approvalSubject = "Registration Approved - Login Credentials"

const approvalBody = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px;">
    <h2 style="color: #1e3a8a; text-align: center;">Registration Approved! 🎉</h2>
    <p>Dear <strong>{{.Name}}</strong>,</p>
    <p>Congratulations! Your registration for the <strong>Code &amp; Quest Feria 2025</strong> has been verified and approved.</p>
    <p>You can now log in to the candidate portal using the credentials below:</p>

    <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
        <p style="margin: 5px 0;"><strong>User Name (Roll No):</strong> <span style="font-family: monospace; font-size: 16px;">{{.RollNumber}}</span></p>
        <p style="margin: 5px 0;"><strong>Password:</strong> <span style="font-family: monospace; font-size: 16px; color: #d97706;">{{.Password}}</span></p>
    </div>

    <div style="text-align: center; margin-top: 30px;">
        <a href="{{.LoginURL}}" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">Login Now</a>
    </div>

    <p style="margin-top: 30px; font-size: 12px; color: #6b7280; text-align: center;">
        If you did not register for this event, please ignore this email.
    </p>
</div>`

func NewMailerService(host, port, user, password, from string) (MailerService, error) {
	tmpl, err := template.New("approval").Parse(approvalBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse approval template: %w", err)
	}

	return &smtpMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		tmpl:     tmpl,
	}, nil
}

func (m *smtpMailer) SendApprovalEmail(req models.ApprovalEmailRequest) error {
	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, req); err != nil {
		return fmt.Errorf("failed to render approval email: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %q <%s>\r\n", m.from, m.user)
	fmt.Fprintf(&msg, "To: %s\r\n", req.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", approvalSubject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.user, []string{req.Email}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send approval email: %w", err)
	}

	return nil
}
