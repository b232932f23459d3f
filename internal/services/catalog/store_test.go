package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/dependencies/mocks"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/persistence"
	"github.com/mcoot/gamehub/internal/storage/memory"
	"github.com/mcoot/gamehub/internal/testutil"
)

var seedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

var errWriteFailed = errors.New("write failed")

// fakeSession is a settable SessionSource
type fakeSession struct {
	user *model.User
}

func (f *fakeSession) CurrentUser() *model.User {
	return f.user.Clone()
}

func (f *fakeSession) loginAs(username string) {
	f.user = model.NewUser(username, "")
}

type flakyPersister struct {
	*persistence.Adapter
	failWrites bool
}

func (p *flakyPersister) SaveCatalog(ctx context.Context, games []*model.Game) error {
	if p.failWrites {
		return errWriteFailed
	}
	return p.Adapter.SaveCatalog(ctx, games)
}

type StoreSuite struct {
	suite.Suite
	ctx     context.Context
	persist *flakyPersister
	session *fakeSession
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	store   *Store
	seedID  model.GameID
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	seed := persistence.DefaultSeed(seedTime)
	s.seedID = seed.Games[0].ID
	s.persist = &flakyPersister{Adapter: persistence.New(memory.New(), seed, testutil.NopLogger())}
	s.session = &fakeSession{}
	s.clock = mocks.NewMockClock(seedTime.Add(time.Hour))
	s.clock.Step = time.Millisecond
	s.random = mocks.NewMockRandom()
	s.store = s.newStore()
}

func (s *StoreSuite) newStore() *Store {
	store, err := New(s.ctx, s.persist, s.session, s.clock, s.random, testutil.NopLogger())
	s.Require().NoError(err)
	return store
}

func (s *StoreSuite) publish(name string) *model.Game {
	game, err := s.store.PublishGame(s.ctx, model.GameDraft{
		Name:        name,
		Description: name + " description",
	})
	s.Require().NoError(err)
	return game
}

// Hydration

func (s *StoreSuite) TestNewLoadsPlaceholderGame() {
	games := s.store.AllGames()
	s.Require().Len(games, 1)
	s.Equal("Test Site 1", games[0].Name)
	s.Equal("alan", games[0].Creator)
	s.Len(games[0].Badges, 2)
}

func (s *StoreSuite) TestGamesSurviveRestart() {
	s.session.loginAs("bob")
	published := s.publish("Kart")

	restarted := s.newStore()
	game, err := restarted.GameByID(published.ID)
	s.Require().NoError(err)
	s.Equal("Kart", game.Name)
	s.Equal("bob", game.Creator)
	s.True(published.CreatedAt.Equal(game.CreatedAt))
}

// PublishGame

func (s *StoreSuite) TestPublishGameRequiresSession() {
	_, err := s.store.PublishGame(s.ctx, model.GameDraft{Name: "Kart"})
	s.ErrorIs(err, model.ErrNoSession)
	s.Len(s.store.AllGames(), 1)
}

func (s *StoreSuite) TestPublishGameSetsCreatorAndTime() {
	s.session.loginAs("bob")
	now := s.clock.CurrentTime

	game := s.publish("Kart")
	s.Equal("bob", game.Creator)
	s.True(game.CreatedAt.Equal(now))
	s.Equal(model.GameID("1704114000000"), game.ID)
	s.NotNil(game.Badges)
	s.Empty(game.Badges)
}

func (s *StoreSuite) TestPublishGameAppendsInOrder() {
	s.session.loginAs("bob")
	s.publish("First")
	s.publish("Second")

	games := s.store.AllGames()
	s.Require().Len(games, 3)
	s.Equal("First", games[1].Name)
	s.Equal("Second", games[2].Name)
}

func (s *StoreSuite) TestPublishGameAssignsBadgeIDs() {
	s.session.loginAs("bob")
	game, err := s.store.PublishGame(s.ctx, model.GameDraft{
		Name: "Kart",
		Badges: []model.Badge{
			{Name: "Lap", Description: "Finish a lap", Icon: "🏁"},
			{ID: "custom", Name: "Win", Description: "Win a race", Icon: "🏆"},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(game.Badges, 2)
	s.NotEmpty(game.Badges[0].ID)
	s.NotEqual(string(game.ID), game.Badges[0].ID)
	s.Equal("custom", game.Badges[1].ID)
}

func (s *StoreSuite) TestPublishGameCollidingIDGetsSuffix() {
	s.session.loginAs("bob")
	s.clock.Set(seedTime)
	s.clock.Step = 0
	s.random.QueueString("abcd")

	game := s.publish("Kart")
	s.Equal(s.seedID+"-abcd", game.ID)
}

func (s *StoreSuite) TestPublishGameStorageFailureLeavesCatalog() {
	s.session.loginAs("bob")
	s.persist.failWrites = true

	_, err := s.store.PublishGame(s.ctx, model.GameDraft{Name: "Kart"})
	s.ErrorIs(err, errWriteFailed)
	s.Len(s.store.AllGames(), 1)
}

// Reads

func (s *StoreSuite) TestPublishedGamesFiltersByCreator() {
	s.session.loginAs("bob")
	bobs := s.publish("Bob's game")
	s.session.loginAs("carol")
	s.publish("Carol's game")

	s.session.loginAs("bob")
	mine := s.store.PublishedGames()
	s.Require().Len(mine, 1)
	s.Equal(bobs.ID, mine[0].ID)

	s.session.loginAs("alan")
	s.Len(s.store.PublishedGames(), 1)
}

func (s *StoreSuite) TestPublishedGamesEmptyWithoutSession() {
	games := s.store.PublishedGames()
	s.NotNil(games)
	s.Empty(games)
}

func (s *StoreSuite) TestGameByIDNotFound() {
	_, err := s.store.GameByID("missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StoreSuite) TestReadsReturnCopies() {
	game, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	game.Name = "mutated"
	game.Badges[0].Name = "mutated"

	fresh, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	s.Equal("Test Site 1", fresh.Name)
	s.Equal("Welcome", fresh.Badges[0].Name)
}

// UpdateGame

func (s *StoreSuite) TestUpdateGameMergesFields() {
	name := "Renamed"
	s.Require().NoError(s.store.UpdateGame(s.ctx, s.seedID, model.GameUpdate{Name: &name}))

	game, err := s.newStore().GameByID(s.seedID)
	s.Require().NoError(err)
	s.Equal("Renamed", game.Name)
	s.Equal("An amazing test game with lots of fun features!", game.Description)
	s.Len(game.Badges, 2)
}

func (s *StoreSuite) TestUpdateGameEmptyBadgesClears() {
	s.Require().NoError(s.store.UpdateGame(s.ctx, s.seedID, model.GameUpdate{Badges: []model.Badge{}}))

	game, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	s.Empty(game.Badges)
}

func (s *StoreSuite) TestUpdateGameUnknownIDIsNoop() {
	name := "Renamed"
	s.persist.failWrites = true
	s.NoError(s.store.UpdateGame(s.ctx, "missing", model.GameUpdate{Name: &name}))
	s.Equal("Test Site 1", s.store.AllGames()[0].Name)
}

func (s *StoreSuite) TestUpdateGameStorageFailure() {
	name := "Renamed"
	s.persist.failWrites = true
	s.ErrorIs(s.store.UpdateGame(s.ctx, s.seedID, model.GameUpdate{Name: &name}), errWriteFailed)
	s.Equal("Test Site 1", s.store.AllGames()[0].Name)
}

// DeleteGame

func (s *StoreSuite) TestDeleteGame() {
	s.Require().NoError(s.store.DeleteGame(s.ctx, s.seedID))
	s.Empty(s.store.AllGames())
	s.Empty(s.newStore().AllGames())
}

func (s *StoreSuite) TestDeleteUnknownGameLeavesCatalog() {
	before := s.store.AllGames()
	s.Require().NoError(s.store.DeleteGame(s.ctx, "missing"))
	s.Equal(before, s.store.AllGames())
}

// Badges

func (s *StoreSuite) TestAddBadge() {
	badge, err := s.store.AddBadge(s.ctx, s.seedID, "Speedrun", "Finish in under an hour", "⏱️")
	s.Require().NoError(err)
	s.NotEmpty(badge.ID)

	game, err := s.newStore().GameByID(s.seedID)
	s.Require().NoError(err)
	s.Require().Len(game.Badges, 3)
	s.Equal(*badge, game.Badges[2])
}

func (s *StoreSuite) TestAddBadgeRequiresAllFields() {
	_, err := s.store.AddBadge(s.ctx, s.seedID, "Speedrun", "", "⏱️")
	s.ErrorIs(err, model.ErrInvalidBadge)
	_, err = s.store.AddBadge(s.ctx, s.seedID, "", "desc", "⏱️")
	s.ErrorIs(err, model.ErrInvalidBadge)
	_, err = s.store.AddBadge(s.ctx, s.seedID, "Speedrun", "desc", "")
	s.ErrorIs(err, model.ErrInvalidBadge)
}

func (s *StoreSuite) TestAddBadgeUnknownGame() {
	_, err := s.store.AddBadge(s.ctx, "missing", "Speedrun", "desc", "⏱️")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StoreSuite) TestRemoveBadge() {
	game, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)

	s.Require().NoError(s.store.RemoveBadge(s.ctx, s.seedID, game.Badges[0].ID))

	game, err = s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	s.Require().Len(game.Badges, 1)
	s.Equal("Explorer", game.Badges[0].Name)
}

func (s *StoreSuite) TestRemoveUnknownBadgeIsNoop() {
	s.Require().NoError(s.store.RemoveBadge(s.ctx, s.seedID, "missing"))
	game, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	s.Len(game.Badges, 2)
}

func (s *StoreSuite) TestRemoveBadgeUnknownGame() {
	s.ErrorIs(s.store.RemoveBadge(s.ctx, "missing", "x"), model.ErrGameNotFound)
}

// Votes

func (s *StoreSuite) TestVoteRequiresSession() {
	_, err := s.store.Vote(s.ctx, s.seedID, model.VoteLike)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *StoreSuite) TestVoteRejectsUnknownKind() {
	s.session.loginAs("bob")
	_, err := s.store.Vote(s.ctx, s.seedID, model.Vote("meh"))
	s.ErrorIs(err, model.ErrInvalidVote)
}

func (s *StoreSuite) TestVoteUnknownGame() {
	s.session.loginAs("bob")
	_, err := s.store.Vote(s.ctx, "missing", model.VoteLike)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StoreSuite) TestVoteTogglesAndSwitches() {
	s.session.loginAs("bob")

	game, err := s.store.Vote(s.ctx, s.seedID, model.VoteLike)
	s.Require().NoError(err)
	s.Equal(1, game.Likes())
	s.Equal(model.VoteLike, game.VoteOf("bob"))

	game, err = s.store.Vote(s.ctx, s.seedID, model.VoteDislike)
	s.Require().NoError(err)
	s.Equal(0, game.Likes())
	s.Equal(1, game.Dislikes())

	game, err = s.store.Vote(s.ctx, s.seedID, model.VoteDislike)
	s.Require().NoError(err)
	s.Equal(0, game.Dislikes())
	s.Equal(model.Vote(""), game.VoteOf("bob"))
}

func (s *StoreSuite) TestVotesAreCountedPerUser() {
	s.session.loginAs("bob")
	_, err := s.store.Vote(s.ctx, s.seedID, model.VoteLike)
	s.Require().NoError(err)
	s.session.loginAs("carol")
	_, err = s.store.Vote(s.ctx, s.seedID, model.VoteLike)
	s.Require().NoError(err)

	game, err := s.newStore().GameByID(s.seedID)
	s.Require().NoError(err)
	s.Equal(2, game.Likes())
}

func (s *StoreSuite) TestUpdateGameAssignsMissingBadgeIDs() {
	badges := []model.Badge{{Name: "Lap", Description: "Finish a lap", Icon: "🏁"}}
	s.Require().NoError(s.store.UpdateGame(s.ctx, s.seedID, model.GameUpdate{Badges: badges}))

	game, err := s.store.GameByID(s.seedID)
	s.Require().NoError(err)
	s.Require().Len(game.Badges, 1)
	s.NotEmpty(game.Badges[0].ID)
	s.Empty(badges[0].ID)
}
