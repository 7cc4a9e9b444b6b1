package grids

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-tabletop/internal/redis"
)

const (
	gridKeyPrefix     = "grid:"
	gridIndexKey      = "grid:index"
	updateChannelBase = "grid:updates:"

	subscriptionBuffer = 16
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil || c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis repository for shared grids
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func gridKey(id string) string {
	return gridKeyPrefix + id
}

func updateChannel(id string) string {
	return updateChannelBase + id
}

func marshalGrid(g grid.GameGrid) ([]byte, error) {
	data, err := json.Marshal(grid.ToDTO(g))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal grid")
	}
	return data, nil
}

func unmarshalGrid(data []byte) (grid.GameGrid, error) {
	var dto grid.DTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return grid.GameGrid{}, errors.WrapWithCode(err, errors.CodeDataLoss, "stored grid is not valid JSON")
	}
	g, err := grid.FromDTO(dto)
	if err != nil {
		return grid.GameGrid{}, errors.WrapWithCode(err, errors.CodeDataLoss, "stored grid is invalid").
			WithMeta("grid_id", dto.ID)
	}
	return g, nil
}

func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Grid.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	data, err := marshalGrid(input.Grid)
	if err != nil {
		return nil, err
	}

	key := gridKey(input.Grid.ID)
	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.AlreadyExistsf("grid %s already exists", input.Grid.ID)
		}
		// the grid and its index entry land together or not at all
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, gridIndexKey, input.Grid.ID)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
	case errors.IsAlreadyExists(err):
		return nil, err
	case stderrors.Is(err, goredis.TxFailedErr):
		return nil, errors.AlreadyExistsf("grid %s already exists", input.Grid.ID)
	default:
		return nil, errors.Wrap(err, "failed to store grid")
	}
	return &CreateOutput{Grid: input.Grid}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	data, err := r.client.Get(ctx, gridKey(input.ID)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("grid %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get grid")
	}
	g, err := unmarshalGrid(data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Grid: g}, nil
}

func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.Grid.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	data, err := marshalGrid(input.Grid)
	if err != nil {
		return nil, err
	}
	ok, err := r.client.SetXX(ctx, gridKey(input.Grid.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update grid")
	}
	if !ok {
		return nil, errors.NotFoundf("grid %s not found", input.Grid.ID)
	}
	return &UpdateOutput{Grid: input.Grid}, nil
}

func (r *redisRepository) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, gridIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read grid index")
	}
	if len(ids) == 0 {
		return &ListOutput{Grids: []grid.GameGrid{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gridKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load grids")
	}

	out := make([]grid.GameGrid, 0, len(values))
	for _, v := range values {
		// index entries can outlive their grid
		s, ok := v.(string)
		if !ok {
			continue
		}
		g, err := unmarshalGrid([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastModified.Equal(out[j].LastModified) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastModified.After(out[j].LastModified)
	})
	return &ListOutput{Grids: out}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, gridKey(input.ID))
	pipe.SRem(ctx, gridIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete grid")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("grid %s not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if input == nil || input.Grid.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	data, err := marshalGrid(input.Grid)
	if err != nil {
		return nil, err
	}
	n, err := r.client.Publish(ctx, updateChannel(input.Grid.ID), data).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to publish grid")
	}
	return &PublishOutput{Receivers: n}, nil
}

func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}

	pubsub := r.client.Subscribe(ctx, updateChannel(input.ID))
	// wait for the confirmation so nothing published after we return is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to subscribe to grid updates")
	}

	updates := make(chan grid.GameGrid, subscriptionBuffer)
	go func() {
		defer close(updates)
		defer func() { _ = pubsub.Close() }()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				g, err := unmarshalGrid([]byte(msg.Payload))
				if err != nil {
					continue
				}
				select {
				case updates <- g:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return &SubscribeOutput{Updates: updates}, nil
}
