package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/cli"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/testutil"
)

// cliRunner runs the CLI in-process against a server URL
type cliRunner struct {
	serverURL string
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
		"--no-color",
	}, args...)

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(fullArgs)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func (r *cliRunner) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "args: %v, output: %s", args, output)
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}

// startTestServer runs the real API server on a free port until the test ends
func startTestServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(context.Background(), factory.Config{
		Logger:          logger,
		PasswordHashing: account.HashingPlain,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Storage:  app.Storage,
		Accounts: app.Accounts,
		Catalog:  app.Catalog,
		Market:   app.Market,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = port
	server := api.NewServer(router, serverCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
		_ = app.Close()
	})

	serverURL := "http://127.0.0.1:" + strconv.Itoa(port)
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("server at %s did not become ready", url)
}

func TestCLIHealth(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	var health cli.HealthResult
	r.runJSON(t, &health, "health")
	assert.Equal(t, r.serverURL, health.Server)
	assert.Equal(t, "ok", health.Status)
}

func TestCLIAccountFlow(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	var avail cli.Availability
	r.runJSON(t, &avail, "account", "available", "bob")
	assert.True(t, avail.Available)

	var session cli.Session
	r.runJSON(t, &session, "account", "create", "--user", "bob", "--pass", "secret1")
	require.NotNil(t, session.User)
	assert.Equal(t, "bob", session.User.Username)
	assert.Equal(t, int64(100), session.User.Currency)

	r.runJSON(t, &avail, "account", "available", "BOB")
	assert.False(t, avail.Available)

	r.runJSON(t, &session, "account", "currency", "--delta", "-30")
	assert.Equal(t, int64(70), session.User.Currency)

	_, err := r.run("account", "logout")
	require.NoError(t, err)

	session = cli.Session{}
	r.runJSON(t, &session, "account", "me")
	assert.Nil(t, session.User)

	_, err = r.run("account", "login", "--user", "bob", "--pass", "wrong!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_CREDENTIALS")

	r.runJSON(t, &session, "account", "login", "--user", "bob", "--pass", "secret1")
	assert.Equal(t, int64(70), session.User.Currency)

	_, err = r.run("account", "delete")
	require.Error(t, err)

	_, err = r.run("account", "delete", "--yes")
	require.NoError(t, err)

	r.runJSON(t, &avail, "account", "available", "bob")
	assert.True(t, avail.Available)
}

func TestCLIGamesFlow(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	var session cli.Session
	r.runJSON(t, &session, "account", "login", "--user", "alan", "--pass", "Owner52")

	var game cli.Game
	r.runJSON(t, &game, "games", "publish",
		"--name", "Kart",
		"--description", "Racing",
		"--badge", "Lap|Finish a lap|🏁",
	)
	assert.Equal(t, "alan", game.Creator)
	require.Len(t, game.Badges, 1)

	var list cli.GameList
	r.runJSON(t, &list, "games", "list")
	assert.Len(t, list.Games, 2)

	r.runJSON(t, &list, "games", "list", "--mine")
	assert.Len(t, list.Games, 2)

	r.runJSON(t, &game, "games", "update", game.ID, "--name", "Kart Deluxe", "--clear-badges")
	assert.Equal(t, "Kart Deluxe", game.Name)
	assert.Empty(t, game.Badges)

	var badge cli.Badge
	r.runJSON(t, &badge, "games", "badge", "add", game.ID, "--name", "Win", "--description", "Win a race", "--icon", "🏆")
	assert.NotEmpty(t, badge.ID)

	r.runJSON(t, &game, "games", "vote", game.ID, "like")
	assert.Equal(t, 1, game.Likes)
	r.runJSON(t, &game, "games", "vote", game.ID, "dislike")
	assert.Equal(t, 0, game.Likes)
	assert.Equal(t, 1, game.Dislikes)

	_, err := r.run("games", "badge", "remove", game.ID, badge.ID)
	require.NoError(t, err)

	r.runJSON(t, &game, "games", "show", game.ID)
	assert.Empty(t, game.Badges)

	_, err = r.run("games", "delete", game.ID)
	require.NoError(t, err)

	_, err = r.run("games", "show", game.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GAME_NOT_FOUND")
}

func TestCLIMarketAndAdmin(t *testing.T) {
	r := &cliRunner{serverURL: startTestServer(t)}

	var items cli.ItemList
	r.runJSON(t, &items, "market", "list")
	require.Len(t, items.Items, 1)
	assert.Equal(t, "teapot", items.Items[0].ID)

	_, err := r.run("market", "buy", "teapot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")

	var session cli.Session
	r.runJSON(t, &session, "account", "login", "--user", "alan", "--pass", "Owner52")

	_, err = r.run("admin", "grant", "--user", "alan", "--amount", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_ADMIN")

	var purchase cli.Purchase
	r.runJSON(t, &purchase, "market", "buy", "teapot")
	assert.Equal(t, int64(90), purchase.User.Currency)
	assert.True(t, purchase.Item.Owned)

	_, err = r.run("market", "buy", "teapot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITEM_ALREADY_OWNED")

	r.runJSON(t, &session, "account", "login", "--user", "admin", "--pass", "Admin52")
	_, err = r.run("admin", "grant", "--user", "alan", "--amount", "50")
	require.NoError(t, err)

	r.runJSON(t, &session, "account", "login", "--user", "alan", "--pass", "Owner52")
	assert.Equal(t, int64(140), session.User.Currency)
	assert.Equal(t, []string{"teapot"}, session.User.OwnedItems)
}
