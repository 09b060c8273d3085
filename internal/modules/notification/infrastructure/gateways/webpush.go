package gateways

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
)

// WebPushSender signs and delivers payloads per the Web Push protocol
// (VAPID). HTTP 404/410 from an endpoint means the subscription no longer
// exists and is surfaced as ErrEndpointGone.
type WebPushSender struct {
	opts webpush.Options
}

// NewWebPushSender returns nil when either key is empty; callers treat a
// nil sender as a permanently disabled channel.
func NewWebPushSender(publicKey, privateKey, subscriber string) *WebPushSender {
	if publicKey == "" || privateKey == "" {
		return nil
	}
	return &WebPushSender{
		opts: webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             60,
		},
	}
}

func (s *WebPushSender) Send(ctx context.Context, endpoint string, keys domain.SubscriptionKeys, payload []byte) error {
	sub := &webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: keys.P256dh,
			Auth:   keys.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, sub, &s.opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: status %d", domain.ErrEndpointGone, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
