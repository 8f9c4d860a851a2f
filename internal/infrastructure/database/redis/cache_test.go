package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

type CacheSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.cache = NewCache(newClientFromRdb(db, "askchem:", nil), nil)
}

func (s *CacheSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type cachedAnswer struct {
	Question string `json:"question"`
	Product  string `json:"product"`
}

func (s *CacheSuite) TestGetHit() {
	want := cachedAnswer{Question: "propene + hbr", Product: "2-Bromopropane"}
	data, _ := json.Marshal(want)
	s.mock.ExpectGet("askchem:ans:abc").SetVal(string(data))

	var got cachedAnswer
	s.Require().NoError(s.cache.Get(context.Background(), "ans:abc", &got))
	s.Equal(want, got)
}

func (s *CacheSuite) TestGetMiss() {
	s.mock.ExpectGet("askchem:ans:abc").RedisNil()

	var got cachedAnswer
	err := s.cache.Get(context.Background(), "ans:abc", &got)
	s.Equal(ErrCacheMiss, err)
}

func (s *CacheSuite) TestGetNullMarkerIsMiss() {
	s.mock.ExpectGet("askchem:ans:abc").SetVal(nullMarker)

	var got cachedAnswer
	s.Equal(ErrCacheMiss, s.cache.Get(context.Background(), "ans:abc", &got))
}

func (s *CacheSuite) TestGetCorruptPayload() {
	s.mock.ExpectGet("askchem:ans:abc").SetVal("{not json")

	var got cachedAnswer
	err := s.cache.Get(context.Background(), "ans:abc", &got)
	s.Require().Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheSuite) TestDelete() {
	s.mock.ExpectDel("askchem:k1", "askchem:k2").SetVal(2)
	s.NoError(s.cache.Delete(context.Background(), "k1", "k2"))
}

func (s *CacheSuite) TestDeleteNoKeysIsNoop() {
	s.NoError(s.cache.Delete(context.Background()))
}

func (s *CacheSuite) TestGetOrSetHitSkipsLoader() {
	want := cachedAnswer{Question: "benzene nitration", Product: "Nitrobenzene"}
	data, _ := json.Marshal(want)
	s.mock.ExpectGet("askchem:ans:nitro").SetVal(string(data))

	loaderCalled := false
	var got cachedAnswer
	err := s.cache.GetOrSet(context.Background(), "ans:nitro", &got, time.Minute, func(context.Context) (interface{}, error) {
		loaderCalled = true
		return nil, nil
	})
	s.Require().NoError(err)
	s.False(loaderCalled)
	s.Equal(want, got)
}

func (s *CacheSuite) TestGetOrSetLoaderError() {
	s.mock.ExpectGet("askchem:ans:x").RedisNil()

	var got cachedAnswer
	err := s.cache.GetOrSet(context.Background(), "ans:x", &got, time.Minute, func(context.Context) (interface{}, error) {
		return nil, pkgerrors.Internal("boom")
	})
	s.Require().Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeInternal))
}

func (s *CacheSuite) TestGetOrSetNilLoaderResultCachesNull() {
	s.mock.ExpectGet("askchem:ans:x").RedisNil()
	s.mock.ExpectSet("askchem:ans:x", nullMarker, 30*time.Second).SetVal("OK")

	var got cachedAnswer
	err := s.cache.GetOrSet(context.Background(), "ans:x", &got, time.Minute, func(context.Context) (interface{}, error) {
		return nil, nil
	})
	s.Equal(ErrCacheMiss, err)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func TestJitterTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), jitterTTL(0))
	for i := 0; i < 100; i++ {
		got := jitterTTL(10 * time.Minute)
		assert.GreaterOrEqual(t, got, 9*time.Minute)
		assert.LessOrEqual(t, got, 11*time.Minute)
	}
}
