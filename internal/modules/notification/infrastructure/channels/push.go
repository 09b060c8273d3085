package channels

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

// PushEnvelope is the payload delivered to every registered endpoint.
type PushEnvelope struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Icon    string   `json:"icon"`
	Badge   string   `json:"badge"`
	Data    PushData `json:"data"`
}

type PushData struct {
	ID       uuid.UUID               `json:"id"`
	Type     domain.NotificationType `json:"type"`
	Priority domain.Priority         `json:"priority"`
	Metadata domain.Metadata         `json:"metadata"`
	URL      string                  `json:"url"`
}

// PushChannel fans a signed push payload out to every endpoint a user has
// registered. Availability is fixed at construction: without signing keys
// the channel is permanently disabled and every send reports {0,0}.
type PushChannel struct {
	subs    domain.SubscriptionRepository
	gateway domain.WebPushGateway
	enabled bool
	icon    string
	badge   string
	log     *zap.Logger
}

// NewPushChannel builds the channel. gateway may be nil when signing keys
// were never configured; the channel then stays disabled for its lifetime.
func NewPushChannel(subs domain.SubscriptionRepository, gateway domain.WebPushGateway, log *zap.Logger) *PushChannel {
	enabled := gateway != nil
	if !enabled {
		log.Warn("push channel disabled, no VAPID keys configured")
	}
	return &PushChannel{
		subs:    subs,
		gateway: gateway,
		enabled: enabled,
		icon:    "/icons/icon-192.png",
		badge:   "/icons/badge-72.png",
		log:     log,
	}
}

func (c *PushChannel) Name() string { return domain.ChannelPush }

func (c *PushChannel) Enabled(prefs domain.Preferences) bool { return prefs.PushEnabled }

func (c *PushChannel) Send(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (bool, error) {
	result, err := c.SendPush(ctx, tenantID, userID, n)
	if err != nil {
		return false, err
	}
	return result.Sent > 0, nil
}

// SendPush delivers to all of the user's endpoints concurrently, each in
// isolation: one slow or dead endpoint cannot block or fail the others.
// Endpoints the gateway reports as permanently gone are pruned.
func (c *PushChannel) SendPush(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (domain.PushResult, error) {
	if !c.enabled {
		return domain.PushResult{}, nil
	}

	subs, err := c.subs.GetByUser(ctx, tenantID, userID)
	if err != nil {
		return domain.PushResult{}, err
	}
	if len(subs) == 0 {
		return domain.PushResult{}, nil
	}

	payload, err := json.Marshal(c.envelope(n))
	if err != nil {
		return domain.PushResult{}, err
	}

	var (
		mu     sync.Mutex
		result domain.PushResult
		wg     sync.WaitGroup
	)
	for i := range subs {
		sub := subs[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.gateway.Send(ctx, sub.Endpoint, sub.Keys(), payload)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Sent++
			case errors.Is(err, domain.ErrEndpointGone):
				// Dead endpoint, not a transient failure: prune and move on.
				c.prune(ctx, tenantID, sub)
			default:
				result.Failed++
				c.log.Warn("push endpoint send failed",
					zap.String("tenant", tenantID),
					zap.String("user", userID.String()),
					zap.String("endpoint", sub.Endpoint),
					zap.Error(err))
			}
		}()
	}
	wg.Wait()

	return result, nil
}

// prune removes a subscription whose endpoint no longer exists. Cleanup,
// not an application error.
func (c *PushChannel) prune(ctx context.Context, tenantID string, sub domain.PushSubscription) {
	if _, err := c.subs.Delete(ctx, tenantID, sub.UserID, sub.Endpoint); err != nil {
		c.log.Warn("failed to prune dead push subscription",
			zap.String("tenant", tenantID),
			zap.String("endpoint", sub.Endpoint),
			zap.Error(err))
		return
	}
	c.log.Info("pruned dead push subscription",
		zap.String("tenant", tenantID),
		zap.String("user", sub.UserID.String()),
		zap.String("endpoint", sub.Endpoint))
}

func (c *PushChannel) envelope(n *domain.Notification) PushEnvelope {
	url := "/notifications"
	if u, ok := n.Metadata["url"].(string); ok && u != "" {
		url = u
	}
	return PushEnvelope{
		Title:   n.Title,
		Message: n.Message,
		Icon:    c.icon,
		Badge:   c.badge,
		Data: PushData{
			ID:       n.ID,
			Type:     n.Type,
			Priority: n.Priority,
			Metadata: n.Metadata,
			URL:      url,
		},
	}
}
