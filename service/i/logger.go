package i

// Logger is the leveled logger components receive as a dependency.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
