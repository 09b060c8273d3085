package channels

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

// maxSMSLength is the gateway's hard body limit, including the truncation
// marker.
const maxSMSLength = 1600

const truncationMarker = "..."

// SmsChannel resolves and normalizes the recipient's phone number,
// composes a bounded message body and sends it through the SMS gateway.
type SmsChannel struct {
	gateway   domain.SMSGateway
	directory domain.UserDirectory
	from      string
	log       *zap.Logger
}

func NewSmsChannel(gateway domain.SMSGateway, directory domain.UserDirectory, from string, log *zap.Logger) *SmsChannel {
	return &SmsChannel{gateway: gateway, directory: directory, from: from, log: log}
}

func (c *SmsChannel) Name() string { return domain.ChannelSMS }

func (c *SmsChannel) Enabled(prefs domain.Preferences) bool { return prefs.SMSEnabled }

func (c *SmsChannel) Send(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (bool, error) {
	if c.gateway == nil {
		c.log.Warn("sms channel disabled, no gateway configured")
		return false, nil
	}

	raw, err := c.directory.PhoneFor(ctx, tenantID, userID)
	if err != nil || raw == "" {
		c.log.Warn("sms skipped, no phone number on file",
			zap.String("tenant", tenantID),
			zap.String("user", userID.String()),
			zap.Error(err))
		return false, nil
	}

	to := NormalizePhone(raw)
	if to == "" {
		c.log.Warn("sms skipped, unresolvable phone number",
			zap.String("tenant", tenantID),
			zap.String("user", userID.String()))
		return false, nil
	}

	body := composeSMSBody(n.Title, n.Message)

	err = c.gateway.Send(ctx, domain.SMSMessage{To: to, From: c.from, Body: body})
	if err != nil {
		if errors.Is(err, domain.ErrSMSRateLimited) {
			c.log.Warn("sms gateway rate exceeded",
				zap.String("tenant", tenantID),
				zap.String("user", userID.String()),
				zap.Error(err))
		} else {
			c.log.Error("sms gateway send failed",
				zap.String("tenant", tenantID),
				zap.String("user", userID.String()),
				zap.Error(err))
		}
		return false, err
	}
	return true, nil
}

// composeSMSBody joins title and message and truncates the result to the
// gateway limit, marker included. The limit counts characters, not bytes,
// so multi-byte scripts are never cut mid-rune.
func composeSMSBody(title, message string) string {
	body := title + ": " + message
	runes := []rune(body)
	if len(runes) <= maxSMSLength {
		return body
	}
	return string(runes[:maxSMSLength-len(truncationMarker)]) + truncationMarker
}
