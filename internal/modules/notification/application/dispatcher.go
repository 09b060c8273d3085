package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

// Channel is one delivery mechanism the dispatcher drives. Implementations
// report their name, whether the user's preferences enable them, and a
// send that may fail without consequence for the other channels. Send
// reports whether anything was actually delivered: a silent no-op (no
// address on file, no registered endpoints) is delivered=false with a nil
// error.
type Channel interface {
	Name() string
	Enabled(prefs domain.Preferences) bool
	Send(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (bool, error)
}

const channelTimeout = 10 * time.Second

// Dispatcher fans one notification out across the delivery channels. Every
// channel runs inside its own failure boundary; Dispatch itself never
// fails and its result map is informational only.
type Dispatcher struct {
	channels []Channel
	resolver *PreferenceResolver
	log      *zap.Logger
}

func NewDispatcher(resolver *PreferenceResolver, log *zap.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, resolver: resolver, log: log}
}

func (d *Dispatcher) Dispatch(ctx context.Context, tenantID string, n *domain.Notification) domain.DispatchResult {
	result := domain.EmptyDispatchResult()

	if n.EntityID == nil {
		d.log.Debug("dispatch skipped, notification has no recipient",
			zap.String("tenant", tenantID),
			zap.String("notification", n.ID.String()))
		return result
	}
	userID := *n.EntityID

	prefs := d.resolver.Resolve(ctx, tenantID, userID)

	for _, ch := range d.channels {
		if !ch.Enabled(prefs) {
			continue
		}
		delivered, err := d.trySend(ctx, ch, tenantID, userID, n)
		if err != nil {
			// Rate limiting is throttling, not an outage; keep it below
			// Error so it does not page.
			logAt := d.log.Error
			if errors.Is(err, domain.ErrSMSRateLimited) {
				logAt = d.log.Warn
			}
			logAt("channel delivery failed",
				zap.String("channel", ch.Name()),
				zap.String("tenant", tenantID),
				zap.String("notification", n.ID.String()),
				zap.Error(err))
			continue
		}
		result[ch.Name()] = delivered
	}

	return result
}

// trySend is the isolation boundary: a channel error or panic is converted
// to a per-channel failure and goes no further.
func (d *Dispatcher) trySend(ctx context.Context, ch Channel, tenantID string, userID uuid.UUID, n *domain.Notification) (delivered bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			delivered = false
			err = fmt.Errorf("channel %s panicked: %v", ch.Name(), r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, channelTimeout)
	defer cancel()

	return ch.Send(sendCtx, tenantID, userID, n)
}
