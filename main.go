package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abel-tefera/delve/api"
	api_i "github.com/abel-tefera/delve/api/i"
	"github.com/abel-tefera/delve/api/identity"
	sessionapi "github.com/abel-tefera/delve/api/session"
	"github.com/abel-tefera/delve/config"
	"github.com/abel-tefera/delve/game/dungeon"
	"github.com/abel-tefera/delve/infrastruture/token"
	"github.com/abel-tefera/delve/logger"
	"github.com/abel-tefera/delve/service"
	"github.com/abel-tefera/delve/service/i"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	jwtTokenizer      i.Tokenizer
	sessionManager    i.SessionManager
	sessionController api_i.Controller
	router            *api.Router
	appLogger         i.Logger
)

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating JWT tokenizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func dungeonFactory(seed int64) (*dungeon.Dungeon, error) {
	return dungeon.Generate(dungeon.Config{
		Width:  config.Envs.DungeonWidth,
		Height: config.Envs.DungeonHeight,
		Layout: dungeon.Layout(config.Envs.DungeonLayout),
		Seed:   seed,
	})
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		DungeonFactory: dungeonFactory,
		Tokenizer:      jwtTokenizer,
		Logger:         sessionLogger,
		MaxSessions:    config.Envs.MaxSessions,
		EnemyCount:     config.Envs.EnemyCount,
		ItemCount:      config.Envs.ItemCount,
		TickInterval:   time.Duration(config.Envs.TickMS) * time.Millisecond,
		Seed:           config.Envs.DungeonSeed,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initSessionController() {
	var err error
	sessionController, err = sessionapi.NewSessionController(sessionManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	gin.SetMode(config.Envs.GinMode)

	// Initialize dependencies
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Creating app logger: %v", err)
	}

	initJWTTokenizer()
	initSessionManager()
	initSessionController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
