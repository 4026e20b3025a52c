//go:build integration

package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"worklog/internal/timelog/cache"
	"worklog/pkg/testutil/containers"
)

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.SummaryCache
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = cache.New(s.redis.Client, time.Minute)
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

type payload struct {
	Owner string  `json:"owner"`
	Total float64 `json:"total"`
}

func (s *CacheSuite) TestMissComputesThenHits() {
	ctx := context.Background()
	computes := 0
	compute := func(context.Context) (any, error) {
		computes++
		return payload{Owner: "emp-1", Total: 15.5}, nil
	}

	var got payload
	hit, err := s.cache.GetOrCompute(ctx, "emp-1", "stats", &got, compute)
	s.Require().NoError(err)
	s.False(hit)
	s.Equal(15.5, got.Total)

	var again payload
	hit, err = s.cache.GetOrCompute(ctx, "emp-1", "stats", &again, compute)
	s.Require().NoError(err)
	s.True(hit)
	s.Equal(got, again)
	s.Equal(1, computes, "second call must be served from cache")
}

func (s *CacheSuite) TestInvalidateForcesRecompute() {
	ctx := context.Background()
	total := 1.0
	compute := func(context.Context) (any, error) {
		return payload{Owner: "emp-1", Total: total}, nil
	}

	var got payload
	_, err := s.cache.GetOrCompute(ctx, "emp-1", "stats", &got, compute)
	s.Require().NoError(err)
	s.Equal(1.0, got.Total)

	total = 2.0
	s.cache.Invalidate(ctx, "emp-1")

	_, err = s.cache.GetOrCompute(ctx, "emp-1", "stats", &got, compute)
	s.Require().NoError(err)
	s.Equal(2.0, got.Total, "invalidation must orphan the old entry")
}

func (s *CacheSuite) TestInvalidateIsPerOwner() {
	ctx := context.Background()
	computes := 0
	compute := func(context.Context) (any, error) {
		computes++
		return payload{Owner: "emp-2", Total: 3}, nil
	}

	var got payload
	_, err := s.cache.GetOrCompute(ctx, "emp-2", "stats", &got, compute)
	s.Require().NoError(err)

	s.cache.Invalidate(ctx, "emp-1")

	hit, err := s.cache.GetOrCompute(ctx, "emp-2", "stats", &got, compute)
	s.Require().NoError(err)
	s.True(hit, "another owner's invalidation must not evict this entry")
	s.Equal(1, computes)
}

func (s *CacheSuite) TestComputeErrorIsNotCached() {
	ctx := context.Background()
	boom := errors.New("store down")
	calls := 0

	var got payload
	_, err := s.cache.GetOrCompute(ctx, "emp-3", "stats", &got, func(context.Context) (any, error) {
		calls++
		return nil, boom
	})
	s.ErrorIs(err, boom)

	_, err = s.cache.GetOrCompute(ctx, "emp-3", "stats", &got, func(context.Context) (any, error) {
		calls++
		return payload{Total: 9}, nil
	})
	s.Require().NoError(err)
	s.Equal(9.0, got.Total)
	s.Equal(2, calls)
}

func (s *CacheSuite) TestConcurrentCallersShareOneCompute() {
	ctx := context.Background()
	var computes atomic.Int32
	compute := func(context.Context) (any, error) {
		computes.Add(1)
		time.Sleep(50 * time.Millisecond)
		return payload{Owner: "emp-4", Total: 7}, nil
	}

	const callers = 20
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got payload
			_, err := s.cache.GetOrCompute(ctx, "emp-4", "stats", &got, compute)
			s.NoError(err)
			s.Equal(7.0, got.Total)
		}()
	}
	wg.Wait()

	s.LessOrEqual(computes.Load(), int32(2), "singleflight should collapse concurrent recomputes")
}
