package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
)

const (
	waitlistEntriesKey = "waitlist:entries" // hash: e-mail -> entrada em JSON
	waitlistOrderKey   = "waitlist:order"   // lista: e-mails em ordem de chegada
)

// addEntryScript grava a entrada no hash e na lista de ordem numa única operação.
// Retorna 0 se o e-mail já existe. Se o HSET falhar depois do RPUSH, o RPOP
// desfaz o push, então o hash e a lista nunca divergem.
var addEntryScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[1])
local res = redis.pcall('HSET', KEYS[1], ARGV[1], ARGV[2])
if type(res) == 'table' and res.err then
	redis.call('RPOP', KEYS[2])
	return res
end
return 1
`)

// RedisWaitlistStore é a alternativa ao arquivo JSON para quando há mais de uma instância.
// A unicidade do e-mail é garantida pelo script de inclusão, que roda atomicamente.
type RedisWaitlistStore struct {
	client *redis.Client
}

func NewRedisWaitlistStore(client *redis.Client) *RedisWaitlistStore {
	return &RedisWaitlistStore{client: client}
}

func (s *RedisWaitlistStore) Add(ctx context.Context, entry domain.WaitlistEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode waitlist entry: %w", err)
	}

	created, err := addEntryScript.Run(ctx, s.client,
		[]string{waitlistEntriesKey, waitlistOrderKey}, entry.Email, string(data)).Int()
	if err != nil {
		return fmt.Errorf("redis add waitlist entry: %w", err)
	}
	if created == 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// List retorna as entradas da mais recente para a mais antiga.
func (s *RedisWaitlistStore) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	emails, err := s.client.LRange(ctx, waitlistOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	if len(emails) == 0 {
		return []domain.WaitlistEntry{}, nil
	}

	values, err := s.client.HMGet(ctx, waitlistEntriesKey, emails...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}

	out := make([]domain.WaitlistEntry, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		var e domain.WaitlistEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode waitlist entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisWaitlistStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, waitlistEntriesKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hlen: %w", err)
	}
	return int(n), nil
}
