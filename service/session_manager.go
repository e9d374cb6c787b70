// Package service hosts the in-memory game session manager behind the
// REST API. Sessions live for the lifetime of the process; there is no
// persistence.
package service

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/dungeon"
	"github.com/abel-tefera/delve/game/explore"
	"github.com/abel-tefera/delve/game/raycast"
	"github.com/abel-tefera/delve/service/i"
	"github.com/abel-tefera/delve/ui"
	"github.com/google/uuid"
)

const (
	defaultMaxSessions = 32
	sessionTokenTTL    = 4 * time.Hour

	// Advance is clamped so one request cannot hog the server.
	maxTurnsPerAdvance = 1000

	viewFOV     = math.Pi / 3
	viewMaxDist = 32.0
)

// Session-related errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
	ErrNoSpawnPoint    = errors.New("generated dungeon has no walkable spawn")
)

type session struct {
	game      *game.Game
	dungeon   *dungeon.Dungeon
	createdAt time.Time
}

// SessionManager creates, steps and discards game sessions. Implements
// i.SessionManager.
type SessionManager struct {
	sessions       map[uuid.UUID]*session
	dungeonFactory func(seed int64) (*dungeon.Dungeon, error)
	tokenizer      i.Tokenizer
	logger         i.Logger
	maxSessions    int
	enemyCount     int
	itemCount      int
	tick           time.Duration
	rng            *rand.Rand
	sync.RWMutex
}

// Config assembles a SessionManager's collaborators.
type Config struct {
	DungeonFactory func(seed int64) (*dungeon.Dungeon, error)
	Tokenizer      i.Tokenizer
	Logger         i.Logger
	MaxSessions    int
	EnemyCount     int
	ItemCount      int
	TickInterval   time.Duration // when positive, each game runs on a live ticker
	Seed           int64         // seeds per-session dungeon seeds; 0 means time-seeded
}

// NewSessionManager creates a SessionManager from the given configuration.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if c == nil || c.DungeonFactory == nil {
		return nil, errors.New("session manager requires a dungeon factory")
	}
	if c.Tokenizer == nil {
		return nil, errors.New("session manager requires a tokenizer")
	}
	if c.Logger == nil {
		return nil, errors.New("session manager requires a logger")
	}

	maxSessions := c.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &SessionManager{
		sessions:       make(map[uuid.UUID]*session),
		dungeonFactory: c.DungeonFactory,
		tokenizer:      c.Tokenizer,
		logger:         c.Logger,
		maxSessions:    maxSessions,
		enemyCount:     c.EnemyCount,
		itemCount:      c.ItemCount,
		tick:           c.TickInterval,
		rng:            rand.New(rand.NewSource(seed)),
	}, nil
}

// Create starts a new dungeon run: generate a map, drop the player with an
// exploration agent, scatter enemies and items, and issue a bearer token
// scoped to the new session.
func (sm *SessionManager) Create() (uuid.UUID, string, error) {
	sm.Lock()
	defer sm.Unlock()

	if len(sm.sessions) >= sm.maxSessions {
		return uuid.Nil, "", ErrTooManySessions
	}

	seed := sm.rng.Int63()
	d, err := sm.dungeonFactory(seed)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("generating dungeon: %w", err)
	}

	spawnRng := rand.New(rand.NewSource(seed))
	spawn, ok := d.RandomFloor(spawnRng)
	if !ok {
		return uuid.Nil, "", ErrNoSpawnPoint
	}

	enemies, items := populate(d, spawnRng, spawn, sm.enemyCount, sm.itemCount)
	g, err := game.New(game.Config{
		Grid:     d,
		Explorer: explore.New(&explore.Options{Rand: rand.New(rand.NewSource(seed))}),
		Spawn:    spawn,
		Enemies:  enemies,
		Items:    items,
		Seed:     seed,
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("creating game: %w", err)
	}

	id := uuid.New()
	tok, err := sm.tokenizer.Generate(map[string]interface{}{"session_id": id.String()}, sessionTokenTTL)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("issuing session token: %w", err)
	}

	sm.sessions[id] = &session{game: g, dungeon: d, createdAt: time.Now()}
	if sm.tick > 0 {
		go g.Start(sm.tick)
	}
	sm.logger.Info(fmt.Sprintf("session %s created: %dx%d dungeon, %d enemies, %d items",
		id, d.Width(), d.Height(), len(enemies), len(items)))
	return id, tok, nil
}

// populate scatters enemies and items over free floor tiles, keeping the
// spawn tile clear.
func populate(d *dungeon.Dungeon, rng *rand.Rand, spawn explore.Cell, enemyCount, itemCount int) ([]*game.Enemy, []game.Item) {
	taken := map[explore.Cell]struct{}{spawn: {}}
	place := func() (explore.Cell, bool) {
		for attempt := 0; attempt < 50; attempt++ {
			c, ok := d.RandomFloor(rng)
			if !ok {
				return explore.Cell{}, false
			}
			if _, used := taken[c]; used {
				continue
			}
			taken[c] = struct{}{}
			return c, true
		}
		return explore.Cell{}, false
	}

	enemyKinds := []game.EnemyKind{game.KindRat, game.KindSkeleton, game.KindWarden}
	itemKinds := []game.ItemKind{game.ItemPotion, game.ItemSword, game.ItemShield, game.ItemGold}

	var enemies []*game.Enemy
	for n := 0; n < enemyCount; n++ {
		pos, ok := place()
		if !ok {
			break
		}
		enemies = append(enemies, game.NewEnemy(enemyKinds[rng.Intn(len(enemyKinds))], pos))
	}

	var items []game.Item
	for n := 0; n < itemCount; n++ {
		pos, ok := place()
		if !ok {
			break
		}
		items = append(items, game.Item{Kind: itemKinds[rng.Intn(len(itemKinds))], Pos: pos})
	}
	return enemies, items
}

func (sm *SessionManager) get(id uuid.UUID) (*session, error) {
	sm.RLock()
	defer sm.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Snapshot returns the session's current state.
func (sm *SessionManager) Snapshot(id uuid.UUID) (game.Snapshot, error) {
	s, err := sm.get(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	return s.game.Snapshot(), nil
}

// Advance steps the simulation by up to turns and returns the resulting
// state.
func (sm *SessionManager) Advance(id uuid.UUID, turns int) (game.Snapshot, error) {
	s, err := sm.get(id)
	if err != nil {
		return game.Snapshot{}, err
	}

	if turns < 1 {
		turns = 1
	}
	if turns > maxTurnsPerAdvance {
		turns = maxTurnsPerAdvance
	}
	for n := 0; n < turns; n++ {
		s.game.Step()
	}
	return s.game.Snapshot(), nil
}

// Command applies a player command to the session. Live games take
// commands through the run loop's queue; stepped games apply them
// synchronously.
func (sm *SessionManager) Command(id uuid.UUID, cmd game.Command) error {
	s, err := sm.get(id)
	if err != nil {
		return err
	}
	if sm.tick > 0 {
		return s.game.Enqueue(cmd)
	}
	s.game.Apply(cmd)
	return nil
}

// Explorer returns the exploration agent's memory for visualization.
func (sm *SessionManager) Explorer(id uuid.UUID) (game.ExplorerView, error) {
	s, err := sm.get(id)
	if err != nil {
		return game.ExplorerView{}, err
	}
	return s.game.Explorer(), nil
}

// Render draws the session's HUD as ASCII art.
func (sm *SessionManager) Render(id uuid.UUID) (string, error) {
	s, err := sm.get(id)
	if err != nil {
		return "", err
	}

	snap := s.game.Snapshot()
	hud := ui.BuildHUD(snap, s.dungeon, s.game.Trail())
	bounds := hud.Bounds()
	surface := ui.NewSurface(bounds.W, bounds.H)
	hud.Draw(surface)
	return surface.String(), nil
}

// View casts the pseudo-3D overlay from the player's position and facing.
func (sm *SessionManager) View(id uuid.UUID, columns int) ([]raycast.Hit, error) {
	s, err := sm.get(id)
	if err != nil {
		return nil, err
	}

	if columns < 1 {
		columns = 1
	}
	snap := s.game.Snapshot()
	x := float64(snap.Player.Pos.X) + 0.5
	y := float64(snap.Player.Pos.Y) + 0.5
	return raycast.View(s.dungeon, x, y, snap.Player.Facing, viewFOV, columns, viewMaxDist), nil
}

// End stops a session's run loop and discards it.
func (sm *SessionManager) End(id uuid.UUID) error {
	sm.Lock()
	defer sm.Unlock()
	s, ok := sm.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sm.tick > 0 {
		s.game.Stop()
	}
	delete(sm.sessions, id)
	sm.logger.Info(fmt.Sprintf("session %s ended", id))
	return nil
}
