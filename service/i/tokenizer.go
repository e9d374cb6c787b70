package i

import "time"

// Tokenizer issues and validates the bearer tokens that scope API access
// to a single game session.
type Tokenizer interface {
	// Generate creates a signed token carrying the given claims.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode parses and validates a token, returning its claims.
	Decode(token string) (map[string]interface{}, error)
}
