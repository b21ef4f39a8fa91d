package links

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// LinkSnapshot is the cached form of one sampled channel realization.
type LinkSnapshot struct {
	Seed     uint64    `json:"seed"`
	Elements int       `json:"elements"`
	Antennas int       `json:"antennas"`
	Trials   int       `json:"trials"`
	Re       []float64 `json:"re"`
	Im       []float64 `json:"im"`
}

// Store caches computed link realizations across runs, keyed by
// scenario and link identity. Purely a memoization layer: a miss is never
// an error for the simulation, the realization is just recomputed.
type Store interface {
	AddLink(ctx context.Context, key string, snapshot *LinkSnapshot) error
	GetLink(ctx context.Context, key string) (*LinkSnapshot, error)
	DeleteLink(ctx context.Context, key string) error
}

type RedisStore struct {
	LinkDB *redis.Client
}

// InitClient creates a redis client and verifies connectivity with an
// exponential backoff probe.
func InitClient(redisHost, redisPort, db, username, password string) *redis.Client {
	database, err := strconv.Atoi(db)
	if err != nil {
		log.Error(err)
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Username: username,
		Password: password,
		DB:       database,
	})

	ping := func() error {
		return client.Ping(context.Background()).Err()
	}
	if err := backoff.Retry(ping, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
		log.Errorf("redis at %s:%s unreachable: %v", redisHost, redisPort, err)
		return nil
	}
	return client
}

func (s *RedisStore) AddLink(ctx context.Context, key string, snapshot *LinkSnapshot) error {
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal link snapshot: %v ", err)
	}
	return s.LinkDB.Set(ctx, key+"-Link", snapshotBytes, time.Duration(0)).Err()
}

func (s *RedisStore) GetLink(ctx context.Context, key string) (*LinkSnapshot, error) {
	snapshotBytes, err := s.LinkDB.Get(ctx, key+"-Link").Result()
	if err != nil {
		return nil, fmt.Errorf("error fetching link snapshot for key %s: %v", key, err)
	}
	if len(snapshotBytes) == 0 {
		return nil, fmt.Errorf("link snapshot for key %s does not exist", key)
	}

	snapshot := &LinkSnapshot{}
	if err = json.Unmarshal([]byte(snapshotBytes), snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link snapshot: %v ", err)
	}
	return snapshot, nil
}

func (s *RedisStore) DeleteLink(ctx context.Context, key string) error {
	return s.LinkDB.Del(ctx, key+"-Link").Err()
}
