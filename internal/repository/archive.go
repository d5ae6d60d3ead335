package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

const recentGamesKey = "archive:recent"

var ErrGameRecordNotFound = errors.New("game record not found")

type GameArchive interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	Recent(ctx context.Context, limit int64) ([]string, error)
}

type dbArchive struct {
	client *redis.Client
	ttl    time.Duration
	keep   int64
}

// NewGameArchive - finished games stored in redis for ttl; the recent list keeps at most keep ids.
func NewGameArchive(client *redis.Client, ttl time.Duration, keep int64) GameArchive {
	return &dbArchive{
		client: client,
		ttl:    ttl,
		keep:   keep,
	}
}

// Save - stores the record under its own id; a record without one gets a fresh uuid.
func (that *dbArchive) Save(ctx context.Context, record *entity.GameRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal game record: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameRecordKey(record.ID), recordJSON, that.ttl)
		pipe.LPush(ctx, recentGamesKey, record.ID)
		pipe.LTrim(ctx, recentGamesKey, 0, that.keep-1)
		pipe.Expire(ctx, recentGamesKey, that.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	response, err := that.client.Get(ctx, gameRecordKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game record by id: %w", err)
	}

	var record entity.GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

// Recent - record ids of the latest archived games, newest first. Expired records are skipped.
func (that *dbArchive) Recent(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	ids, err := that.client.LRange(ctx, recentGamesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	if len(ids) == 0 {
		return []string{}, nil
	}

	exists := make([]*redis.IntCmd, len(ids))
	_, err = that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			exists[i] = pipe.Exists(ctx, gameRecordKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check recent games: %w", err)
	}

	live := make([]string, 0, len(ids))
	for i, id := range ids {
		if exists[i].Val() > 0 {
			live = append(live, id)
		}
	}

	return live, nil
}

func gameRecordKey(id string) string {
	return "archive:game:" + id
}
