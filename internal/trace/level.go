package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring only, dumped on failure
	LevelPhase               // driver + pipeline stages
	LevelDetail              // + per-file spans
	LevelDebug               // everything, node scope included
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// maxScope: самый мелкий scope, который уровень ещё пишет.
var maxScope = [...]Scope{
	LevelError:  ScopeNode,
	LevelPhase:  ScopeStage,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case; "" is off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
// LevelError keeps everything: the ring is the crash dump.
func (l Level) ShouldEmit(scope Scope) bool {
	if l == LevelOff || int(l) >= len(maxScope) {
		return false
	}
	return scope <= maxScope[l]
}
