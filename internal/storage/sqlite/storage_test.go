package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "state", "gamehub.db")
	st, err := New(s.path)
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, "users", []byte(`[{"username":"alan"}]`))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, "users")
	s.Require().NoError(err)
	s.JSONEq(`[{"username":"alan"}]`, string(data))
}

func (s *StorageSuite) TestSetOverwrites() {
	_ = s.storage.Set(s.ctx, "games", []byte("[]"))
	s.Require().NoError(s.storage.Set(s.ctx, "games", []byte(`[{"id":"1"}]`)))

	data, err := s.storage.Get(s.ctx, "games")
	s.Require().NoError(err)
	s.Equal(`[{"id":"1"}]`, string(data))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrEntryNotFound)
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

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
	s.Equal(s.path, s.storage.Path())
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamehub.db")
	ctx := context.Background()

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "users", []byte(`[{"username":"bob"}]`)))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	data, err := second.Get(ctx, "users")
	require.NoError(t, err)
	require.JSONEq(t, `[{"username":"bob"}]`, string(data))
}
