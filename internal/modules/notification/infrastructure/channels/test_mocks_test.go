package channels

import (
	"context"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
)

type directoryMock struct {
	emailForFn func(context.Context, string, uuid.UUID) (string, error)
	phoneForFn func(context.Context, string, uuid.UUID) (string, error)
}

func (m directoryMock) EmailFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error) {
	return m.emailForFn(ctx, tenantID, userID)
}

func (m directoryMock) PhoneFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error) {
	return m.phoneForFn(ctx, tenantID, userID)
}

type emailGatewayMock struct {
	sendFn func(context.Context, domain.EmailMessage) error
}

func (m emailGatewayMock) Send(ctx context.Context, msg domain.EmailMessage) error {
	return m.sendFn(ctx, msg)
}

type smsGatewayMock struct {
	sendFn func(context.Context, domain.SMSMessage) error
}

func (m smsGatewayMock) Send(ctx context.Context, msg domain.SMSMessage) error {
	return m.sendFn(ctx, msg)
}

type pushGatewayMock struct {
	sendFn func(context.Context, string, domain.SubscriptionKeys, []byte) error
}

func (m pushGatewayMock) Send(ctx context.Context, endpoint string, keys domain.SubscriptionKeys, payload []byte) error {
	return m.sendFn(ctx, endpoint, keys, payload)
}

type subscriptionRepoMock struct {
	upsertFn           func(context.Context, string, *domain.PushSubscription) (*domain.PushSubscription, error)
	getByUserFn        func(context.Context, string, uuid.UUID) ([]domain.PushSubscription, error)
	deleteFn           func(context.Context, string, uuid.UUID, string) (bool, error)
	deleteAllForUserFn func(context.Context, string, uuid.UUID) (int64, error)
}

func (m *subscriptionRepoMock) Upsert(ctx context.Context, tenantID string, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	return m.upsertFn(ctx, tenantID, sub)
}

func (m *subscriptionRepoMock) GetByUser(ctx context.Context, tenantID string, userID uuid.UUID) ([]domain.PushSubscription, error) {
	return m.getByUserFn(ctx, tenantID, userID)
}

func (m *subscriptionRepoMock) Delete(ctx context.Context, tenantID string, userID uuid.UUID, endpoint string) (bool, error) {
	return m.deleteFn(ctx, tenantID, userID, endpoint)
}

func (m *subscriptionRepoMock) DeleteAllForUser(ctx context.Context, tenantID string, userID uuid.UUID) (int64, error) {
	return m.deleteAllForUserFn(ctx, tenantID, userID)
}

type roomRecorder struct {
	room    string
	event   string
	payload interface{}
	calls   int
}

func (r *roomRecorder) Publish(room, event string, payload interface{}) {
	r.room = room
	r.event = event
	r.payload = payload
	r.calls++
}
