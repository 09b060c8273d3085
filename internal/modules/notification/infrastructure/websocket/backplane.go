package websocket

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const backplaneChannel = "notify:rooms"

type backplaneEnvelope struct {
	Origin string          `json:"origin"`
	Room   string          `json:"room"`
	Data   json.RawMessage `json:"data"`
}

// Backplane mirrors room events through Redis pub/sub so that a client
// connected to one instance still receives events published on another.
type Backplane struct {
	rdb      *redis.Client
	instance string
	log      *zap.Logger

	onRemote func(room string, data []byte)
}

func NewBackplane(rdb *redis.Client, log *zap.Logger) *Backplane {
	return &Backplane{
		rdb:      rdb,
		instance: uuid.NewString(),
		log:      log,
	}
}

// Publish mirrors a locally published event to the other instances.
func (b *Backplane) Publish(room string, data []byte) {
	env, err := json.Marshal(backplaneEnvelope{Origin: b.instance, Room: room, Data: data})
	if err != nil {
		return
	}
	if err := b.rdb.Publish(context.Background(), backplaneChannel, env).Err(); err != nil {
		b.log.Warn("backplane publish failed", zap.Error(err))
	}
}

// Listen consumes remote events until ctx is cancelled. Events that
// originated on this instance are skipped; the hub already delivered them.
func (b *Backplane) Listen(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, backplaneChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env backplaneEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.log.Warn("backplane message unreadable", zap.Error(err))
				continue
			}
			if env.Origin == b.instance {
				continue
			}
			if b.onRemote != nil {
				b.onRemote(env.Room, env.Data)
			}
		}
	}
}
