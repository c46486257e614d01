//go:build integration

package throttle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votecast/internal/voting/throttle"
	"votecast/pkg/testutil/containers"
)

type RedisThrottleSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	now   time.Time
}

func TestRedisThrottleSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisThrottleSuite))
}

func (s *RedisThrottleSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisThrottleSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RedisThrottleSuite) newThrottle(limit int) *throttle.RedisSlidingWindow {
	return throttle.NewRedis(s.redis.Client.Client, limit, 10*time.Minute,
		throttle.WithRedisClock(func() time.Time { return s.now }))
}

func (s *RedisThrottleSuite) TestAllowWithinWindow() {
	ctx := context.Background()
	th := s.newThrottle(3)

	for i := 0; i < 3; i++ {
		res, err := th.Allow(ctx, "p1")
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(2-i, res.Remaining)
		s.now = s.now.Add(time.Minute)
	}

	res, err := th.Allow(ctx, "p1")
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(time.Date(2026, 4, 1, 12, 10, 0, 0, time.UTC), res.ResetAt)

	s.now = time.Date(2026, 4, 1, 12, 10, 0, 1_000_000, time.UTC)
	res, err = th.Allow(ctx, "p1")
	s.Require().NoError(err)
	s.True(res.Allowed, "oldest event slid out of the window")
}

func (s *RedisThrottleSuite) TestReplicasShareTheBudget() {
	ctx := context.Background()
	replicas := []*throttle.RedisSlidingWindow{s.newThrottle(5), s.newThrottle(5), s.newThrottle(5)}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := replicas[i%len(replicas)].Allow(ctx, "p1")
			s.NoError(err)
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(5, allowed)

	other, err := replicas[0].Allow(ctx, "p2")
	s.Require().NoError(err)
	s.True(other.Allowed, "keys are independent")
}
