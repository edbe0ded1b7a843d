package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/project"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hotel-forecast:"

// RedisStore keeps each project as a JSON document and indexes a user's
// projects in a sorted set scored by modification time.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis server at addr.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func projectKey(id string) string {
	return redisKeyPrefix + "project:" + id
}

func userIndexKey(userID string) string {
	return redisKeyPrefix + "user:" + userID + ":projects"
}

func (s *RedisStore) Save(ctx context.Context, p project.SavedProject) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, projectKey(p.ID), doc, 0)
		pipe.ZAdd(ctx, userIndexKey(p.UserID), redis.Z{
			Score:  float64(p.LastModified.UnixNano()),
			Member: p.ID,
		})
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (project.SavedProject, error) {
	doc, err := s.client.Get(ctx, projectKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return project.SavedProject{}, ErrNotFound
		}
		return project.SavedProject{}, err
	}
	var p project.SavedProject
	if err := json.Unmarshal(doc, &p); err != nil {
		return project.SavedProject{}, fmt.Errorf("failed to decode project %s: %w", id, err)
	}
	return p, nil
}

func (s *RedisStore) ListByUser(ctx context.Context, userID string) ([]project.SavedProject, error) {
	ids, err := s.client.ZRevRange(ctx, userIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = projectKey(id)
	}
	docs, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	projects := make([]project.SavedProject, 0, len(docs))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			// Index entry without a document; drop it lazily.
			s.client.ZRem(ctx, userIndexKey(userID), ids[i])
			continue
		}
		var p project.SavedProject
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to decode project %s: %w", ids[i], err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, projectKey(id))
		pipe.ZRem(ctx, userIndexKey(p.UserID), id)
		return nil
	})
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
