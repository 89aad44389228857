package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

// Redis is a pending login store backed by a Redis server. Expiry rides on
// the key TTL and Consume maps to GETDEL, which keeps single use atomic
// across replicas.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: "pending_login:",
	}
}

func (r *Redis) Save(ctx context.Context, handleHash string, in entity.PendingLogin, ttl time.Duration) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.prefix+handleHash, payload, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, handleHash string) (*entity.PendingLogin, error) {
	payload, err := r.client.Get(ctx, r.prefix+handleHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodePendingLogin(payload)
}

func (r *Redis) Consume(ctx context.Context, handleHash string) (*entity.PendingLogin, error) {
	payload, err := r.client.GetDel(ctx, r.prefix+handleHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodePendingLogin(payload)
}

func decodePendingLogin(payload []byte) (*entity.PendingLogin, error) {
	var login entity.PendingLogin
	if err := json.Unmarshal(payload, &login); err != nil {
		return nil, err
	}

	return &login, nil
}
