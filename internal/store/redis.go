package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

// WithPrefix namespaces every Redis key.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Redis keeps one JSON document per game plus a set of known game ids.
type Redis struct {
	redis  redis.UniversalClient
	prefix string
	log    *slog.Logger
}

// NewRedis wraps an existing client.
func NewRedis(rc redis.UniversalClient, opts ...Option) *Redis {
	o := buildOptions(opts)
	return &Redis{redis: rc, prefix: o.prefix, log: o.log}
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, addr string, opts ...Option) (*Redis, error) {
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{addr},
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close on failed ping.
			_ = cerr
		}
		return nil, errors.Persistence("connect redis", err)
	}
	return NewRedis(rc, opts...), nil
}

func (r *Redis) Close() error {
	return r.redis.Close()
}

func (r *Redis) gameKey(id string) string {
	return fmt.Sprintf("%sgame:%s", r.prefix, id)
}

func (r *Redis) indexKey() string {
	return r.prefix + "games"
}

// GetAll returns every stored session, most recently played first.
func (r *Redis) GetAll(ctx context.Context) ([]*model.Session, error) {
	ids, err := r.redis.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, r.fail(ctx, "list games", "", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.gameKey(id)
	}
	values, err := r.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, r.fail(ctx, "list games", "", err)
	}

	sessions := make([]*model.Session, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// Index entry without a document.
			r.log.DebugContext(ctx, "redis store skipped missing game", "game_id", ids[i])
			continue
		}
		sess, err := decodeSession([]byte(data))
		if err != nil {
			return nil, r.fail(ctx, "list games", ids[i], err)
		}
		sessions = append(sessions, sess)
	}
	slices.SortFunc(sessions, func(a, b *model.Session) int {
		return b.LastPlayed.Compare(a.LastPlayed)
	})
	return sessions, nil
}

// Get loads one session.
func (r *Redis) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.redis.Get(ctx, r.gameKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NotFoundf("game %s not found", id)
	}
	if err != nil {
		return nil, r.fail(ctx, "get game", id, err)
	}
	sess, err := decodeSession(data)
	if err != nil {
		return nil, r.fail(ctx, "get game", id, err)
	}
	return sess, nil
}

// Save inserts a new session. An existing id is an error.
func (r *Redis) Save(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return r.fail(ctx, "save game", sess.ID, err)
	}
	// The document and its index entry go out in one MULTI/EXEC.
	var created *redis.BoolCmd
	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, r.gameKey(sess.ID), data, 0)
		pipe.SAdd(ctx, r.indexKey(), sess.ID)
		return nil
	})
	if err != nil {
		return r.fail(ctx, "save game", sess.ID, err)
	}
	if !created.Val() {
		return r.fail(ctx, "save game", sess.ID, fmt.Errorf("game %s already exists", sess.ID))
	}
	return nil
}

// Update replaces a stored session.
func (r *Redis) Update(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return r.fail(ctx, "update game", sess.ID, err)
	}
	ok, err := r.redis.SetXX(ctx, r.gameKey(sess.ID), data, 0).Result()
	if err != nil {
		return r.fail(ctx, "update game", sess.ID, err)
	}
	if !ok {
		return errors.NotFoundf("game %s not found", sess.ID)
	}
	return nil
}

// Delete removes a stored session.
func (r *Redis) Delete(ctx context.Context, id string) error {
	n, err := r.redis.Del(ctx, r.gameKey(id)).Result()
	if err != nil {
		return r.fail(ctx, "delete game", id, err)
	}
	if err := r.redis.SRem(ctx, r.indexKey(), id).Err(); err != nil {
		return r.fail(ctx, "delete game", id, err)
	}
	if n == 0 {
		return errors.NotFoundf("game %s not found", id)
	}
	return nil
}

func (r *Redis) fail(ctx context.Context, op, id string, err error) error {
	r.log.DebugContext(ctx, "redis store failure", "op", op, "game_id", id, "err", err)
	return errors.Persistence(op, err)
}
