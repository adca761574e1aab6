package lock

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 2 * time.Minute

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extend pushes the expiry forward only while the key still holds our token.
var extend = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// client is the part of *redis.Client the locker talks to.
type client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis is a Locker shared by every replica pointing at the same server.
// A held lock is refreshed every ttl/3 until released, so ttl only bounds
// how long a crashed holder can block an order.
type Redis struct {
	client    client
	namespace string
	ttl       time.Duration
}

func NewRedis(addr, namespace string, ttl time.Duration) *Redis {
	return newRedis(redis.NewClient(&redis.Options{Addr: addr}), namespace, ttl)
}

func newRedis(c client, namespace string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: c, namespace: namespace, ttl: ttl}
}

func (r *Redis) key(k string) string { return fmt.Sprintf("%s:lock:%s", r.namespace, k) }

func (r *Redis) TryLock(ctx context.Context, key string) (func(), error) {
	k, token := r.key(key), uuid.NewString()
	ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", k, err)
	}
	if !ok {
		return nil, ErrBusy
	}

	stop, done := make(chan struct{}), make(chan struct{})
	go r.keepAlive(k, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := release.Run(ctx, r.client, []string{k}, token).Err(); err != nil {
				log.Printf("[lock] release %s: %v", k, err)
			}
		})
	}, nil
}

func (r *Redis) keepAlive(k, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(max(r.ttl/3, time.Millisecond))
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			n, err := extend.Run(ctx, r.client, []string{k}, token, r.ttl.Milliseconds()).Int64()
			cancel()
			if err != nil {
				log.Printf("[lock] refresh %s: %v", k, err)
				continue
			}
			if n == 0 {
				log.Printf("[lock] %s lost before release", k)
				return
			}
		}
	}
}

func (r *Redis) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

func (r *Redis) Close() error { return r.client.Close() }
