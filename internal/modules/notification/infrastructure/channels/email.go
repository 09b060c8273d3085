package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

// EmailChannel resolves the recipient's address, renders the body and
// hands it to the email gateway. A recipient without an address is a
// silent no-op; a gateway failure surfaces to the dispatcher's isolation
// boundary.
type EmailChannel struct {
	gateway   domain.EmailGateway
	directory domain.UserDirectory
	from      string
	log       *zap.Logger
}

func NewEmailChannel(gateway domain.EmailGateway, directory domain.UserDirectory, from string, log *zap.Logger) *EmailChannel {
	return &EmailChannel{gateway: gateway, directory: directory, from: from, log: log}
}

func (c *EmailChannel) Name() string { return domain.ChannelEmail }

func (c *EmailChannel) Enabled(prefs domain.Preferences) bool { return prefs.EmailEnabled }

func (c *EmailChannel) Send(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (bool, error) {
	if c.gateway == nil {
		c.log.Warn("email channel disabled, no gateway configured")
		return false, nil
	}

	to, err := c.directory.EmailFor(ctx, tenantID, userID)
	if err != nil || to == "" {
		c.log.Warn("email skipped, no address on file",
			zap.String("tenant", tenantID),
			zap.String("user", userID.String()),
			zap.Error(err))
		return false, nil
	}

	subject := n.Title
	if n.EmailSubject != nil && *n.EmailSubject != "" {
		subject = *n.EmailSubject
	}

	var html string
	if n.HTMLContent != nil && *n.HTMLContent != "" {
		// Pre-rendered content is trusted as-is.
		html = *n.HTMLContent
	} else {
		html = renderHTML(n.Title, n.Message)
	}

	if err := c.gateway.Send(ctx, domain.EmailMessage{
		To:      to,
		From:    c.from,
		Subject: subject,
		HTML:    html,
		Text:    n.Message,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// renderHTML synthesizes a minimal document from title and message. Both
// are entity-escaped; message newlines become line breaks.
func renderHTML(title, message string) string {
	escapedMessage := strings.ReplaceAll(escapeHTML(message), "\n", "<br>")
	return fmt.Sprintf(
		"<!DOCTYPE html><html><body><h2>%s</h2><p>%s</p></body></html>",
		escapeHTML(title), escapedMessage)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
