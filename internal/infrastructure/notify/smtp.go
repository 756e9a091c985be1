package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// SMTPNotifier emails a run summary with the rendered proposals. When no
// host is configured the notifier is a no-op, so the pipeline can always
// call it unconditionally.
type SMTPNotifier struct {
	host string
	port int
	from string
	to   []string
}

// NewSMTPNotifier creates a notifier. An empty host disables delivery.
func NewSMTPNotifier(host string, port int, from string, to []string) *SMTPNotifier {
	if port <= 0 {
		port = 25
	}
	return &SMTPNotifier{host: host, port: port, from: from, to: to}
}

// Enabled reports whether the notifier will actually send mail.
func (n *SMTPNotifier) Enabled() bool {
	return n.host != "" && n.from != "" && len(n.to) > 0
}

// NotifyRun sends one message summarising the run, with every rendered
// proposal appended. Disabled notifiers return nil immediately.
func (n *SMTPNotifier) NotifyRun(ctx context.Context, records []domain.EnrichedRFP, proposals []string) error {
	if !n.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := n.buildMessage(records, proposals)
	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := smtp.SendMail(addr, nil, n.from, n.to, msg); err != nil {
		return fmt.Errorf("sending run notification: %w", err)
	}
	return nil
}

// buildMessage assembles the RFC 822 message body.
func (n *SMTPNotifier) buildMessage(records []domain.EnrichedRFP, proposals []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.to, ", "))
	fmt.Fprintf(&b, "Subject: RFP match run: %d records processed\r\n", len(records))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")

	b.WriteString("Run summary\r\n\r\n")
	for _, r := range records {
		fmt.Fprintf(&b, "- %s %q -> %s (%.2f%%, %s)\r\n",
			r.ID, r.Title, r.MatchedSKU, r.MatchPercent, r.Priority)
	}

	for i, proposal := range proposals {
		if proposal == "" {
			continue
		}
		fmt.Fprintf(&b, "\r\n--- Proposal %d ---\r\n%s\r\n", i+1, proposal)
	}
	return []byte(b.String())
}
