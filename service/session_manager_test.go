package service

import (
	"testing"
	"time"

	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/dungeon"
	"github.com/abel-tefera/delve/game/explore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubTokenizer struct{}

func (stubTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	return "stub-token", nil
}

func (stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string) {}
func (nopLogger) Info(msg string)  {}
func (nopLogger) Warn(msg string)  {}
func (nopLogger) Error(msg string) {}

func testFactory(seed int64) (*dungeon.Dungeon, error) {
	return dungeon.Generate(dungeon.Config{
		Width:  24,
		Height: 16,
		Layout: dungeon.LayoutRooms,
		Seed:   seed,
	})
}

func newTestManager(t *testing.T, maxSessions int) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(&Config{
		DungeonFactory: testFactory,
		Tokenizer:      stubTokenizer{},
		Logger:         nopLogger{},
		MaxSessions:    maxSessions,
		EnemyCount:     3,
		ItemCount:      4,
		Seed:           7,
	})
	require.NoError(t, err)
	return sm
}

func TestNewSessionManagerValidation(t *testing.T) {
	_, err := NewSessionManager(nil)
	require.Error(t, err)

	_, err = NewSessionManager(&Config{Tokenizer: stubTokenizer{}, Logger: nopLogger{}})
	require.Error(t, err, "missing dungeon factory")

	_, err = NewSessionManager(&Config{DungeonFactory: testFactory, Logger: nopLogger{}})
	require.Error(t, err, "missing tokenizer")

	_, err = NewSessionManager(&Config{DungeonFactory: testFactory, Tokenizer: stubTokenizer{}})
	require.Error(t, err, "missing logger")
}

func TestCreateAndSnapshot(t *testing.T) {
	sm := newTestManager(t, 4)

	id, tok, err := sm.Create()
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, "stub-token", tok)

	snap, err := sm.Snapshot(id)
	require.NoError(t, err)
	require.Equal(t, game.StatusExploring, snap.Status)
	require.Equal(t, 24, snap.Width)
	require.Equal(t, 16, snap.Height)
	require.Len(t, snap.Enemies, 3)
	require.Len(t, snap.Items, 4)

	// nothing may share the player's spawn tile
	for _, e := range snap.Enemies {
		require.NotEqual(t, snap.Player.Pos, e.Pos)
	}
	for _, it := range snap.Items {
		require.NotEqual(t, snap.Player.Pos, it.Pos)
	}
}

func TestSessionLimit(t *testing.T) {
	sm := newTestManager(t, 2)

	_, _, err := sm.Create()
	require.NoError(t, err)
	id, _, err := sm.Create()
	require.NoError(t, err)

	_, _, err = sm.Create()
	require.ErrorIs(t, err, ErrTooManySessions)

	require.NoError(t, sm.End(id))
	_, _, err = sm.Create()
	require.NoError(t, err, "ending a session frees a slot")
}

func TestAdvanceStepsTheGame(t *testing.T) {
	sm := newTestManager(t, 4)
	id, _, err := sm.Create()
	require.NoError(t, err)

	snap, err := sm.Advance(id, 10)
	require.NoError(t, err)
	require.Equal(t, int64(10), snap.Turn)

	snap, err = sm.Advance(id, 0)
	require.NoError(t, err)
	require.Equal(t, int64(11), snap.Turn, "non-positive turn counts clamp to one")
}

func TestCommandRoutesToGame(t *testing.T) {
	sm := newTestManager(t, 4)
	id, _, err := sm.Create()
	require.NoError(t, err)

	err = sm.Command(id, game.Command{Kind: game.CommandToggleAutopilot})
	require.NoError(t, err)

	snap, err := sm.Snapshot(id)
	require.NoError(t, err)
	require.False(t, snap.Player.Autopilot)
}

func TestExplorerViewGrowsWithAdvance(t *testing.T) {
	sm := newTestManager(t, 4)
	id, _, err := sm.Create()
	require.NoError(t, err)

	_, err = sm.Advance(id, 50)
	require.NoError(t, err)

	view, err := sm.Explorer(id)
	require.NoError(t, err)
	require.NotEmpty(t, view.Reachable)
	require.NotEmpty(t, view.Visited)
	require.Greater(t, view.Progress, 0)
}

func TestRenderProducesHUD(t *testing.T) {
	sm := newTestManager(t, 4)
	id, _, err := sm.Create()
	require.NoError(t, err)

	out, err := sm.Render(id)
	require.NoError(t, err)
	require.Contains(t, out, "HP")
	require.Contains(t, out, "Explored")
	require.Contains(t, out, "@")
}

func TestViewCastsRequestedColumns(t *testing.T) {
	sm := newTestManager(t, 4)
	id, _, err := sm.Create()
	require.NoError(t, err)

	hits, err := sm.View(id, 40)
	require.NoError(t, err)
	require.Len(t, hits, 40)

	hits, err = sm.View(id, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1, "column counts clamp to one")
}

func TestLiveTickerAdvancesOnItsOwn(t *testing.T) {
	sm, err := NewSessionManager(&Config{
		DungeonFactory: testFactory,
		Tokenizer:      stubTokenizer{},
		Logger:         nopLogger{},
		EnemyCount:     2,
		ItemCount:      2,
		TickInterval:   2 * time.Millisecond,
		Seed:           7,
	})
	require.NoError(t, err)

	id, _, err := sm.Create()
	require.NoError(t, err)
	defer func() { _ = sm.End(id) }()

	require.Eventually(t, func() bool {
		snap, err := sm.Snapshot(id)
		return err == nil && snap.Turn > 0
	}, time.Second, 5*time.Millisecond, "run loop should tick without Advance")

	require.NoError(t, sm.Command(id, game.Command{Kind: game.CommandToggleAutopilot}))
}

func TestUnknownSessionErrors(t *testing.T) {
	sm := newTestManager(t, 4)
	id := uuid.New()

	_, err := sm.Snapshot(id)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.Advance(id, 1)
	require.ErrorIs(t, err, ErrSessionNotFound)
	err = sm.Command(id, game.Command{Kind: game.CommandMove, Dir: explore.North})
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.Explorer(id)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.Render(id)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.View(id, 10)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.ErrorIs(t, sm.End(id), ErrSessionNotFound)
}
