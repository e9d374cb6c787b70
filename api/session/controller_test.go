package sessionapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abel-tefera/delve/api/identity"
	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/raycast"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubManager struct {
	id       uuid.UUID
	turn     int64
	commands []game.Command
	ended    bool
}

func (m *stubManager) Create() (uuid.UUID, string, error) {
	return m.id, "token-" + m.id.String(), nil
}

func (m *stubManager) snapshot() game.Snapshot {
	return game.Snapshot{
		Turn:   m.turn,
		Status: game.StatusExploring,
		Width:  8,
		Height: 6,
		Player: game.PlayerState{HP: 30, MaxHP: 30, Autopilot: true},
	}
}

func (m *stubManager) Snapshot(id uuid.UUID) (game.Snapshot, error) {
	if id != m.id {
		return game.Snapshot{}, errNotFound
	}
	return m.snapshot(), nil
}

func (m *stubManager) Advance(id uuid.UUID, turns int) (game.Snapshot, error) {
	if id != m.id {
		return game.Snapshot{}, errNotFound
	}
	m.turn += int64(turns)
	return m.snapshot(), nil
}

func (m *stubManager) Command(id uuid.UUID, cmd game.Command) error {
	if id != m.id {
		return errNotFound
	}
	m.commands = append(m.commands, cmd)
	return nil
}

func (m *stubManager) Explorer(id uuid.UUID) (game.ExplorerView, error) {
	if id != m.id {
		return game.ExplorerView{}, errNotFound
	}
	return game.ExplorerView{Progress: 42}, nil
}

func (m *stubManager) Render(id uuid.UUID) (string, error) {
	if id != m.id {
		return "", errNotFound
	}
	return "+--+\n|@.|\n+--+\n", nil
}

func (m *stubManager) View(id uuid.UUID, columns int) ([]raycast.Hit, error) {
	if id != m.id {
		return nil, errNotFound
	}
	return make([]raycast.Hit, columns), nil
}

func (m *stubManager) End(id uuid.UUID) error {
	if id != m.id {
		return errNotFound
	}
	m.ended = true
	return nil
}

var errNotFound = errors.New("session not found")

type stubTokenizer struct {
	sessionID string
}

func (t stubTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	return "stub", nil
}

func (t stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	return map[string]interface{}{"session_id": t.sessionID}, nil
}

func newTestServer(t *testing.T, m *stubManager, tokenSessionID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sc, err := NewSessionController(m)
	require.NoError(t, err)

	engine := gin.New()
	public := engine.Group("/v1")
	sc.RegisterPublic(public)
	protected := engine.Group("/v1")
	protected.Use(identity.Authoriz(stubTokenizer{sessionID: tokenSessionID}))
	sc.RegisterProtected(protected)
	return engine
}

func do(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateSession(t *testing.T) {
	m := &stubManager{id: uuid.New()}
	engine := newTestServer(t, m, m.id.String())

	w := do(engine, http.MethodPost, "/v1/sessions/", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, m.id.String(), resp.ID)
	require.NotEmpty(t, resp.Token)
}

func TestStateRequiresMatchingToken(t *testing.T) {
	m := &stubManager{id: uuid.New()}

	t.Run("matching claim", func(t *testing.T) {
		engine := newTestServer(t, m, m.id.String())
		w := do(engine, http.MethodGet, "/v1/sessions/"+m.id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp StateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "exploring", resp.Status)
		require.Equal(t, 30, resp.Player.HP)
	})

	t.Run("foreign claim", func(t *testing.T) {
		engine := newTestServer(t, m, uuid.New().String())
		w := do(engine, http.MethodGet, "/v1/sessions/"+m.id.String(), nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		engine := newTestServer(t, m, m.id.String())
		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+m.id.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStepAdvancesTurns(t *testing.T) {
	m := &stubManager{id: uuid.New()}
	engine := newTestServer(t, m, m.id.String())

	w := do(engine, http.MethodPost, "/v1/sessions/"+m.id.String()+"/step", StepRequest{Turns: 25})
	require.Equal(t, http.StatusOK, w.Code)

	var resp StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(25), resp.Turn)
}

func TestCommandParsing(t *testing.T) {
	m := &stubManager{id: uuid.New()}
	engine := newTestServer(t, m, m.id.String())
	base := "/v1/sessions/" + m.id.String() + "/command"

	w := do(engine, http.MethodPost, base, CommandRequest{Kind: "move", Dir: "north"})
	require.Equal(t, http.StatusAccepted, w.Code)

	w = do(engine, http.MethodPost, base, CommandRequest{Kind: "toggle_autopilot"})
	require.Equal(t, http.StatusAccepted, w.Code)

	w = do(engine, http.MethodPost, base, CommandRequest{Kind: "move", Dir: "up"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodPost, base, CommandRequest{Kind: "dance"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Len(t, m.commands, 2)
	require.Equal(t, game.CommandMove, m.commands[0].Kind)
	require.Equal(t, game.CommandToggleAutopilot, m.commands[1].Kind)
}

func TestViewColumns(t *testing.T) {
	m := &stubManager{id: uuid.New()}
	engine := newTestServer(t, m, m.id.String())
	base := "/v1/sessions/" + m.id.String() + "/view"

	w := do(engine, http.MethodGet, base+"?columns=12", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Columns, 12)

	w = do(engine, http.MethodGet, base+"?columns=nope", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndSession(t *testing.T) {
	m := &stubManager{id: uuid.New()}
	engine := newTestServer(t, m, m.id.String())

	w := do(engine, http.MethodDelete, "/v1/sessions/"+m.id.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, m.ended)
}
