package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, "users", []byte(`[{"username":"alan"}]`))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, "users")
	s.Require().NoError(err)
	s.JSONEq(`[{"username":"alan"}]`, string(data))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestSetOverwrites() {
	_ = s.storage.Set(s.ctx, "games", []byte("[]"))
	_ = s.storage.Set(s.ctx, "games", []byte(`[{"id":"1"}]`))

	data, err := s.storage.Get(s.ctx, "games")
	s.Require().NoError(err)
	s.Equal(`[{"id":"1"}]`, string(data))
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, "currentUser", []byte("{}"))

	s.Require().NoError(s.storage.Delete(s.ctx, "currentUser"))

	_, err := s.storage.Get(s.ctx, "currentUser")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestDeleteMissingKey() {
	s.NoError(s.storage.Delete(s.ctx, "missing"))
}

func (s *StorageSuite) TestValuesAreCopied() {
	value := []byte("abc")
	_ = s.storage.Set(s.ctx, "k", value)
	value[0] = 'z'

	data, err := s.storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("abc", string(data))

	data[1] = 'z'
	again, _ := s.storage.Get(s.ctx, "k")
	s.Equal("abc", string(again))
}

func (s *StorageSuite) TestKeys() {
	_ = s.storage.Set(s.ctx, "users", []byte("[]"))
	_ = s.storage.Set(s.ctx, "games", []byte("[]"))

	s.Equal([]string{"games", "users"}, s.storage.Keys())
}

func (s *StorageSuite) TestPingAndClose() {
	s.NoError(s.storage.Ping(s.ctx))
	s.NoError(s.storage.Close())
}
