// Package conversation keeps the append-only turn log that gates the
// debate flow: a debate always targets the most recent assistant answer.
package conversation

import (
	"errors"
	"sync"

	"github.com/ppiankov/cognitia/internal/model"
)

// ErrNoAssistantTurn is returned when a debate is requested before any
// assistant answer exists.
var ErrNoAssistantTurn = errors.New("debate requires a previous assistant answer")

// Log is a thread-safe, append-only conversation history.
type Log struct {
	mu    sync.RWMutex
	turns []model.Turn
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the end of the log.
func (l *Log) Append(role model.Role, content string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, model.Turn{Role: role, Content: content})
}

// LastTurn returns the most recent turn, if any.
func (l *Log) LastTurn() (model.Turn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.turns) == 0 {
		return model.Turn{}, false
	}
	return l.turns[len(l.turns)-1], true
}

// LastAssistantTurn returns the content of the last turn when it is an
// assistant answer. Any other state fails with ErrNoAssistantTurn: a
// debate must directly follow an answer.
func (l *Log) LastAssistantTurn() (string, error) {
	turn, ok := l.LastTurn()
	if !ok || turn.Role != model.RoleAssistant {
		return "", ErrNoAssistantTurn
	}
	return turn.Content, nil
}

// LastUserQuestion returns the content of the most recent user turn.
func (l *Log) LastUserQuestion() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Role == model.RoleUser {
			return l.turns[i].Content, true
		}
	}
	return "", false
}

// History returns a snapshot copy of all turns.
func (l *Log) History() []model.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Reset clears the log.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
}
