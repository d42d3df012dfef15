package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dasdy/holdlight/model"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "holdlight"

// RedisStorage keeps one hash per boulder plus a set of all names.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStorage(rdb *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisStorage{rdb: rdb, prefix: prefix}
}

// ConnectRedis parses a redis:// URL and checks that the server answers.
func ConnectRedis(ctx context.Context, uri string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url %q: %w", uri, err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()

		return nil, fmt.Errorf("%w: could not reach redis at %s: %w", ErrStorage, opts.Addr, err)
	}

	return NewRedisStorage(rdb, DefaultRedisPrefix), nil
}

func (s *RedisStorage) boulderKey(name string) string {
	return s.prefix + ":boulder:" + name
}

func (s *RedisStorage) indexKey() string {
	return s.prefix + ":boulders"
}

func (s *RedisStorage) Save(ctx context.Context, name string, boulder model.Boulder) error {
	if err := validateName(name); err != nil {
		return err
	}

	holds, err := json.Marshal(boulder.Holds)
	if err != nil {
		return fmt.Errorf("%w: could not encode holds: %w", ErrStorage, err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.boulderKey(name), "difficulty", boulder.Difficulty, "holds", string(holds))
		pipe.SAdd(ctx, s.indexKey(), name)

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: could not save %q: %w", ErrStorage, name, err)
	}

	return nil
}

func (s *RedisStorage) Load(ctx context.Context, name string) (model.Boulder, error) {
	fields, err := s.rdb.HGetAll(ctx, s.boulderKey(name)).Result()
	if err != nil {
		return model.Boulder{}, fmt.Errorf("%w: could not load %q: %w", ErrStorage, name, err)
	}

	if len(fields) == 0 {
		return model.Boulder{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	result := model.Boulder{Difficulty: fields["difficulty"]}
	if err := json.Unmarshal([]byte(fields["holds"]), &result.Holds); err != nil {
		return model.Boulder{}, fmt.Errorf("%w: corrupt holds for %q: %w", ErrStorage, name, err)
	}

	return result, nil
}

func (s *RedisStorage) Delete(ctx context.Context, name string) error {
	var deleted *redis.IntCmd

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, s.boulderKey(name))
		pipe.SRem(ctx, s.indexKey(), name)

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: could not delete %q: %w", ErrStorage, name, err)
	}

	if deleted.Val() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

func (s *RedisStorage) List(ctx context.Context) ([]model.BoulderSummary, error) {
	names, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: could not list boulders: %w", ErrStorage, err)
	}

	if len(names) == 0 {
		return []model.BoulderSummary{}, nil
	}

	slices.Sort(names)

	cmds := make([]*redis.StringCmd, len(names))

	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, name := range names {
			cmds[i] = pipe.HGet(ctx, s.boulderKey(name), "difficulty")
		}

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: could not read difficulties: %w", ErrStorage, err)
	}

	result := make([]model.BoulderSummary, 0, len(names))
	for i, name := range names {
		result = append(result, model.BoulderSummary{Name: name, Difficulty: cmds[i].Val()})
	}

	return result, nil
}

func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
