package panel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptsubmit/internal/archive"
	"scriptsubmit/internal/discord"
	"scriptsubmit/internal/logbuf"
	"scriptsubmit/internal/workflow"
)

type fakeBot struct {
	running  bool
	startErr error
	stopErr  error
}

func (f *fakeBot) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeBot) Stop() error {
	if f.stopErr != nil {
		return f.stopErr
	}
	f.running = false
	return nil
}

func (f *fakeBot) Status() discord.Status {
	return discord.Status{Online: f.running, Guilds: 2, Submissions: 1}
}

func newTestServer(t *testing.T, bot *fakeBot, arch *archive.Store) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(bot, logbuf.New(), arch).Router())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestStartStopBot(t *testing.T) {
	bot := &fakeBot{}
	srv := newTestServer(t, bot, nil)

	resp, err := http.Post(srv.URL+"/start-bot", "application/json", nil)
	require.NoError(t, err)
	var env actionEnvelope
	decode(t, resp, &env)
	assert.True(t, env.Success)
	assert.True(t, bot.running)

	resp, err = http.Post(srv.URL+"/stop-bot", "application/json", nil)
	require.NoError(t, err)
	decode(t, resp, &env)
	assert.True(t, env.Success)
	assert.False(t, bot.running)
}

func TestStartBotFailureReported(t *testing.T) {
	bot := &fakeBot{startErr: errors.New("bad token")}
	srv := newTestServer(t, bot, nil)

	resp, err := http.Post(srv.URL+"/start-bot", "application/json", nil)
	require.NoError(t, err)
	var env actionEnvelope
	decode(t, resp, &env)
	assert.False(t, env.Success)
	assert.Equal(t, "bad token", env.Message)
}

func TestStatusAndHealth(t *testing.T) {
	bot := &fakeBot{running: true}
	srv := newTestServer(t, bot, nil)

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	var st discord.Status
	decode(t, resp, &st)
	assert.True(t, st.Online)
	assert.Equal(t, 2, st.Guilds)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]interface{}
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, true, health["botOnline"])
}

func TestLogsEndpoint(t *testing.T) {
	bot := &fakeBot{}
	rec := logbuf.New()
	rec.Infof("hello from test")
	srv := httptest.NewServer(NewServer(bot, rec, nil).Router())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/logs")
	require.NoError(t, err)
	var entries []logbuf.Entry
	decode(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello from test", entries[0].Message)
}

func TestDeliveriesWithoutArchive(t *testing.T) {
	srv := newTestServer(t, &fakeBot{}, nil)
	resp, err := http.Get(srv.URL + "/api/deliveries")
	require.NoError(t, err)
	var recs []archive.Record
	decode(t, resp, &recs)
	assert.Empty(t, recs)
}

func TestDeliveriesFromArchive(t *testing.T) {
	arch, err := archive.Open(filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	t.Cleanup(func() { arch.Close() })
	require.NoError(t, arch.Record(context.Background(), workflow.Summary{
		UserID:     "1001",
		Username:   "alice#0",
		ScriptName: "Auto Farm",
		GameLink:   "https://roblox.com/games/1",
	}, time.Now()))

	srv := newTestServer(t, &fakeBot{}, arch)
	resp, err := http.Get(srv.URL + "/api/deliveries")
	require.NoError(t, err)
	var recs []archive.Record
	decode(t, resp, &recs)
	require.Len(t, recs, 1)
	assert.Equal(t, "Auto Farm", recs[0].ScriptName)
}
