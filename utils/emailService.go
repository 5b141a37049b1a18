package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML mail through the configured SMTP relay.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.EmailSender == "" {
		// Mail is disabled in this environment
		return nil
	}

	from := cfg.EmailSender
	password := cfg.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, cfg.SMTPHost)

	return smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, from, to, []byte(msg))
}

// HTML wrapper shared by all transactional mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.content h2 { color: #1E293B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.code-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6366F1; margin: 20px 0; font-size: 20px; letter-spacing: 4px; text-align: center; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Learning Platform</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because you have an account on Learning Platform.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

func SendConfirmationEmail(email, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome! Confirm your email address with the code below to activate your account:</p>
		<div class="code-box">%s</div>
		<p>The code expires in 24 hours.</p>`, name, code)

	return SendEmail([]string{email}, "Confirm your email", getEmailTemplate("Confirm your email", body))
}

func SendPasswordResetEmail(email, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. Use this code to continue:</p>
		<div class="code-box">%s</div>
		<p>The code expires in 15 minutes. If you did not request a reset, you can ignore this email.</p>`, name, code)

	return SendEmail([]string{email}, "Reset your password", getEmailTemplate("Reset your password", body))
}

func SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your email is confirmed and your account is ready. Browse the catalog, enroll in a course and start learning.</p>`, name)

	return SendEmail([]string{email}, "Welcome to Learning Platform", getEmailTemplate("Welcome aboard", body))
}

func SendEnrollmentEmail(email, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <b>%s</b>. Your progress is tracked automatically as you complete lessons.</p>`, name, courseTitle)

	return SendEmail([]string{email}, "Enrollment confirmed: "+courseTitle, getEmailTemplate("Enrollment confirmed", body))
}
