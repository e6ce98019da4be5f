// AngelaMos | 2026
// mailer.go

package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/angelamos/streamvault/internal/config"
)

// Mailer delivers transactional email over SMTP. When the config disables
// email, every send is a logged no-op so local environments work without a
// relay.
type Mailer struct {
	cfg     config.SMTPConfig
	logger  *slog.Logger
	timeout time.Duration
}

func New(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:     cfg,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

func (m *Mailer) SendWelcome(ctx context.Context, email, name string) error {
	if !m.cfg.Enabled {
		m.logger.Info("email disabled, skipping welcome mail", "to", email)
		return nil
	}

	body := welcomeBody(name)
	msg := m.buildMessage(email, "Welcome to StreamVault", body)

	if err := m.send(ctx, email, msg); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	m.logger.Info("welcome email sent", "to", email)
	return nil
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, token, name string) error {
	if !m.cfg.Enabled {
		m.logger.Info("email disabled, skipping reset mail", "to", email)
		return nil
	}

	resetURL := m.cfg.ClientURL + "/reset-password?token=" + url.QueryEscape(token)
	body := passwordResetBody(name, resetURL, email)
	msg := m.buildMessage(email, "Password Reset Request - StreamVault", body)

	if err := m.send(ctx, email, msg); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}

	m.logger.Info("password reset email sent", "to", email)
	return nil
}

func (m *Mailer) buildMessage(to, subject, htmlBody string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromAddress()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return msg.String()
}

func (m *Mailer) send(ctx context.Context, to, msg string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to smtp server: %w", err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck // best-effort cleanup

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer func() { _ = client.Close() }() //nolint:errcheck // best-effort cleanup

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName: m.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("start tls: %w", err)
		}
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp authentication: %w", err)
		}
	}

	if err := client.Mail(m.cfg.FromAddress()); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	// Quit failures after a delivered message are not worth surfacing.
	_ = client.Quit() //nolint:errcheck

	return nil
}

func welcomeBody(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background:#000;color:#fff;">
  <div style="max-width:600px;margin:0 auto;padding:40px 20px;">
    <div style="background:#111;border:1px solid #333;border-radius:8px;overflow:hidden;">
      <div style="padding:30px 40px;text-align:center;background:#e50914;">
        <h1 style="margin:0;font-size:28px;color:#fff;">STREAMVAULT</h1>
      </div>
      <div style="padding:40px;">
        <h2 style="margin:0 0 20px;color:#fff;">Welcome aboard!</h2>
        <p style="margin:0 0 20px;color:#ccc;font-size:16px;line-height:1.5;">
          Hello %s, your account is ready. Your starter category is already
          unlocked, so you can begin watching right away.
        </p>
        <p style="margin:0;color:#999;font-size:14px;">
          Want more content? An administrator can extend your category access
          at any time.
        </p>
      </div>
    </div>
  </div>
</body>
</html>`, name)
}

func passwordResetBody(name, resetURL, email string) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background:#000;color:#fff;">
  <div style="max-width:600px;margin:0 auto;padding:40px 20px;">
    <div style="background:#111;border:1px solid #333;border-radius:8px;overflow:hidden;">
      <div style="padding:30px 40px;text-align:center;background:#e50914;">
        <h1 style="margin:0;font-size:28px;color:#fff;">STREAMVAULT</h1>
      </div>
      <div style="padding:40px;">
        <h2 style="margin:0 0 20px;color:#fff;">Password Reset Request</h2>
        <p style="margin:0 0 20px;color:#ccc;font-size:16px;line-height:1.5;">
          Hello %s, we received a request to reset your password. Click the
          button below to choose a new one.
        </p>
        <p style="text-align:center;padding:20px 0;">
          <a href="%s" style="display:inline-block;padding:15px 30px;background:#e50914;color:#fff;text-decoration:none;border-radius:4px;font-weight:bold;">Reset Password</a>
        </p>
        <p style="margin:0 0 20px;color:#999;font-size:14px;line-height:1.5;">
          If you did not request this, ignore this email and your password
          stays unchanged. The link expires in 1 hour.
        </p>
        <p style="margin:0;color:#e50914;font-size:12px;word-break:break-all;">%s</p>
      </div>
      <div style="padding:20px 40px;background:#1a1a1a;text-align:center;border-top:1px solid #333;">
        <p style="margin:0;color:#999;font-size:12px;">
          This email was sent to %s because a password reset was requested.
        </p>
      </div>
    </div>
  </div>
</body>
</html>`, name, resetURL, resetURL, email)
}
