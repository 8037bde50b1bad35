package logger

import "fmt"

type Level int

const (
	DEBUG Level = iota
	NOTICE
	INFO
	ERROR
	WARN
	FATAL
)

var levelNames = []string{
	"DEBUG",
	"NOTICE",
	"INFO",
	"ERROR",
	"WARN",
	"FATAL",
}

// String returns the string representation of a logging level.
func (p Level) String() string {
	return levelNames[p]
}

// LevelFromString converts a level name to a Level value.
func LevelFromString(s string) (Level, error) {
	switch s {
	case "debug":
		return DEBUG, nil
	case "notice":
		return NOTICE, nil
	case "info":
		return INFO, nil
	case "error":
		return ERROR, nil
	case "warn":
		return WARN, nil
	case "fatal":
		return FATAL, nil
	default:
		return FATAL, fmt.Errorf("%s is not a valid logging level, try debug, notice, info, error, warn or fatal", s)
	}
}
