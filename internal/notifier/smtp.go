package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nechmerust/sanctuary-api/internal/config"
)

// SMTPNotifier delivers notifications over SMTP with STARTTLS-capable
// PLAIN auth. All notifications go to a single sanctuary inbox.
type SMTPNotifier struct {
	cfg       config.SMTP
	recipient string
}

// NewSMTPNotifier constructs an SMTPNotifier.
func NewSMTPNotifier(cfg config.SMTP, recipient string) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, recipient: recipient}
}

func (n *SMTPNotifier) Notify(ctx context.Context, kind Kind, data any) error {
	subject, body, err := composeEmail(kind, data, time.Now())
	if err != nil {
		return err
	}

	msg := buildMessage(n.cfg.User, n.recipient, subject, body)
	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)

	// smtp.SendMail has no context support; run it in a goroutine and
	// abandon the attempt when the context expires. The spawned send
	// finishes (or errors) on its own without anyone waiting.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, n.cfg.User, []string{n.recipient}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail: %w", ctx.Err())
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Message-ID: <%s@nechmerust.org>\r\n", uuid.NewString())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogNotifier renders notifications into the log instead of sending them.
// Used when SMTP credentials are not configured, so form submissions never
// fail just because mail is unavailable.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, kind Kind, data any) error {
	subject, body, err := composeEmail(kind, data, time.Now())
	if err != nil {
		return err
	}
	n.log.Info("notification logged (smtp not configured)",
		"kind", string(kind),
		"subject", subject,
		"body", body,
	)
	return nil
}
