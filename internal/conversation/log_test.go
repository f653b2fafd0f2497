package conversation

import (
	"errors"
	"testing"

	"github.com/ppiankov/cognitia/internal/model"
)

func TestAppendAndHistory(t *testing.T) {
	log := NewLog()
	log.Append(model.RoleUser, "question")
	log.Append(model.RoleAssistant, "answer")

	history := log.History()
	if len(history) != 2 {
		t.Fatalf("got %d turns, want 2", len(history))
	}
	if history[0].Role != model.RoleUser || history[0].Content != "question" {
		t.Errorf("first turn = %+v", history[0])
	}
	if history[1].Role != model.RoleAssistant || history[1].Content != "answer" {
		t.Errorf("second turn = %+v", history[1])
	}
}

func TestHistoryIsASnapshot(t *testing.T) {
	log := NewLog()
	log.Append(model.RoleUser, "question")

	snapshot := log.History()
	log.Append(model.RoleAssistant, "answer")

	if len(snapshot) != 1 {
		t.Errorf("snapshot grew after a later Append: %d turns", len(snapshot))
	}
}

func TestLastAssistantTurnGating(t *testing.T) {
	log := NewLog()

	if _, err := log.LastAssistantTurn(); !errors.Is(err, ErrNoAssistantTurn) {
		t.Errorf("empty log: err = %v, want ErrNoAssistantTurn", err)
	}

	log.Append(model.RoleUser, "question")
	if _, err := log.LastAssistantTurn(); !errors.Is(err, ErrNoAssistantTurn) {
		t.Errorf("user last: err = %v, want ErrNoAssistantTurn", err)
	}

	log.Append(model.RoleAssistant, "answer")
	content, err := log.LastAssistantTurn()
	if err != nil {
		t.Fatalf("assistant last: unexpected error %v", err)
	}
	if content != "answer" {
		t.Errorf("content = %q, want %q", content, "answer")
	}

	log.Append(model.RoleUser, "followup")
	if _, err := log.LastAssistantTurn(); !errors.Is(err, ErrNoAssistantTurn) {
		t.Errorf("user again last: err = %v, want ErrNoAssistantTurn", err)
	}
}

func TestLastUserQuestion(t *testing.T) {
	log := NewLog()

	if _, ok := log.LastUserQuestion(); ok {
		t.Error("empty log should have no user question")
	}

	log.Append(model.RoleUser, "first")
	log.Append(model.RoleAssistant, "answer")
	log.Append(model.RoleUser, "second")

	question, ok := log.LastUserQuestion()
	if !ok || question != "second" {
		t.Errorf("got (%q, %v), want (second, true)", question, ok)
	}
}

func TestReset(t *testing.T) {
	log := NewLog()
	log.Append(model.RoleUser, "question")
	log.Reset()

	if log.Len() != 0 {
		t.Errorf("Len = %d after Reset, want 0", log.Len())
	}
	if _, ok := log.LastTurn(); ok {
		t.Error("LastTurn should report empty after Reset")
	}
}
