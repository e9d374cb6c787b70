package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string // Host IP for the server
	RESTPort      int    // Port for the REST API
	GinMode       string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret     string // Secret key for signing session tokens
	JWTIssuer     string // Issuer claim for session tokens
	DungeonWidth  int    // Width of generated dungeons, in tiles
	DungeonHeight int    // Height of generated dungeons, in tiles
	DungeonLayout string // Layout algorithm for generated dungeons (rooms, labyrinth)
	DungeonSeed   int64  // Seed for dungeon generation; 0 means time-seeded
	EnemyCount    int    // Number of enemies spawned per dungeon
	ItemCount     int    // Number of items scattered per dungeon
	TickMS        int    // Simulation tick interval in milliseconds
	MaxSessions   int    // Maximum number of concurrent game sessions
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:        mustGetEnv("HOST_IP"),
		RESTPort:      mustGetEnvAsInt("REST_PORT"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     mustGetEnv("JWT_SECRET"),
		JWTIssuer:     mustGetEnv("JWT_ISSUER"),
		DungeonWidth:  getEnvAsIntWithDefault("DUNGEON_WIDTH", 48),
		DungeonHeight: getEnvAsIntWithDefault("DUNGEON_HEIGHT", 32),
		DungeonLayout: getEnvWithDefault("DUNGEON_LAYOUT", "rooms"),
		DungeonSeed:   int64(getEnvAsIntWithDefault("DUNGEON_SEED", 0)),
		EnemyCount:    getEnvAsIntWithDefault("ENEMY_COUNT", 6),
		ItemCount:     getEnvAsIntWithDefault("ITEM_COUNT", 10),
		TickMS:        getEnvAsIntWithDefault("TICK_MS", 100),
		MaxSessions:   getEnvAsIntWithDefault("MAX_SESSIONS", 32),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer
// or returns a default value if not set. A set but unparsable value is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
