package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"drivergate/pkg/platform/sentinel"
)

const redisKey = "drivergate:driver_id_seq"

// Redis issues ids with INCR, which is atomic server-side. Used when
// the deployment keeps records somewhere without native sequences.
type Redis struct {
	client redis.Cmdable
}

var _ Issuer = (*Redis)(nil)

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Next(ctx context.Context) (string, error) {
	n, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return "", fmt.Errorf("%w: next driver id: %v", sentinel.ErrUnavailable, err)
	}
	return Format(n), nil
}
