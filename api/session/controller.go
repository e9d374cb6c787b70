// Package sessionapi handles dungeon-run session management over HTTP.
package sessionapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abel-tefera/delve/api/identity"
	"github.com/abel-tefera/delve/game"
	"github.com/abel-tefera/delve/game/explore"
	"github.com/abel-tefera/delve/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultViewColumns = 80

var (
	errInvalidKind      = errors.New("kind must be \"move\" or \"toggle_autopilot\"")
	errInvalidDirection = errors.New("dir must be one of north, south, east, west")
)

// SessionController manages dungeon-run sessions.
type SessionController struct {
	sessionManager i.SessionManager
}

// NewSessionController initializes a SessionController.
func NewSessionController(sm i.SessionManager) (*SessionController, error) {
	return &SessionController{
		sessionManager: sm,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("/", sc.create)
	}
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.GET("/:ID", sc.state)
		sessions.POST("/:ID/step", sc.step)
		sessions.POST("/:ID/command", sc.command)
		sessions.GET("/:ID/explorer", sc.explorer)
		sessions.GET("/:ID/render", sc.render)
		sessions.GET("/:ID/view", sc.view)
		sessions.DELETE("/:ID", sc.end)
	}
}

// create starts a new dungeon run and hands back its bearer token.
func (sc *SessionController) create(ctx *gin.Context) {
	id, token, err := sc.sessionManager.Create()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	response := &CreateResponse{
		ID:    id.String(),
		Token: token,
	}
	ctx.JSON(http.StatusCreated, response)
}

// sessionID parses the path ID and checks it against the token's
// session_id claim, so one session's token cannot drive another session.
func (sc *SessionController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return uuid.Nil, false
	}

	claimID, ok := identity.SessionID(ctx)
	if !ok || claimID != ID.String() {
		ctx.Status(http.StatusForbidden)
		return uuid.Nil, false
	}
	return ID, true
}

// state returns the session's current snapshot.
func (sc *SessionController) state(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	snap, err := sc.sessionManager.Snapshot(ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newStateResponse(snap))
}

// step advances the simulation.
func (sc *SessionController) step(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	var request StepRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := sc.sessionManager.Advance(ID, request.Turns)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newStateResponse(snap))
}

// command applies a manual player command.
func (sc *SessionController) command(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	var request CommandRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd, err := parseCommand(request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.sessionManager.Command(ID, cmd); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusAccepted)
}

// explorer exposes the exploration agent's memory.
func (sc *SessionController) explorer(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	view, err := sc.sessionManager.Explorer(ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newExplorerResponse(view))
}

// render returns the ASCII HUD.
func (sc *SessionController) render(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	screen, err := sc.sessionManager.Render(ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, &RenderResponse{Screen: screen})
}

// view returns the pseudo-3D column scan.
func (sc *SessionController) view(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	columns := defaultViewColumns
	if raw := ctx.Query("columns"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "columns must be a positive integer"})
			return
		}
		columns = parsed
	}

	hits, err := sc.sessionManager.View(ID, columns)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newViewResponse(hits))
}

// end discards the session.
func (sc *SessionController) end(ctx *gin.Context) {
	ID, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	if err := sc.sessionManager.End(ID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseCommand(request CommandRequest) (game.Command, error) {
	switch request.Kind {
	case "move":
		dir, ok := parseDirection(request.Dir)
		if !ok {
			return game.Command{}, errInvalidDirection
		}
		return game.Command{Kind: game.CommandMove, Dir: dir}, nil
	case "toggle_autopilot":
		return game.Command{Kind: game.CommandToggleAutopilot}, nil
	default:
		return game.Command{}, errInvalidKind
	}
}

func parseDirection(s string) (explore.Cell, bool) {
	switch s {
	case "north":
		return explore.North, true
	case "south":
		return explore.South, true
	case "east":
		return explore.East, true
	case "west":
		return explore.West, true
	default:
		return explore.Cell{}, false
	}
}
