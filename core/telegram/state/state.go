// Package state provides a lightweight per-user FSM for Telegram
// conversations. State is a single value per user: the flow carries no
// data between messages beyond the user's position in the dialog.
package state

import (
	"sync"

	"log/slog"

	"starsbot/core/logger"
	tghelpers "starsbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// State identifies a finite-state-machine step used in conversations.
type State string

// StateIdle indicates there is no active conversation with the user.
const StateIdle State = "idle"

// Manager owns the user→state mapping and the handlers bound to each
// state. It is passed around as an explicit dependency; there is no
// package-level session storage.
type Manager interface {
	StateOf(userID int64) State
	SetState(userID int64, st State)
	ClearState(userID int64)
	InProgress(userID int64) bool

	// Bind associates a state with the handler invoked for text updates
	// arriving in that state. Bind must be called during wiring, before
	// updates start flowing.
	Bind(st State, h tele.HandlerFunc)
	// Dispatch runs the handler bound to the sender's current state.
	// Updates for states without a bound handler are dropped.
	Dispatch(c tele.Context) error
}

type memoryManager struct {
	mu       sync.RWMutex
	states   map[int64]State
	handlers map[State]tele.HandlerFunc
}

// NewMemoryManager constructs an in-memory Manager. Map access is guarded
// so concurrent users are safe; per-user event ordering is the transport's
// concern.
func NewMemoryManager() Manager {
	return &memoryManager{
		states:   make(map[int64]State),
		handlers: make(map[State]tele.HandlerFunc),
	}
}

// StateOf returns the current state of a user, or StateIdle if none exists.
func (m *memoryManager) StateOf(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[userID]; ok {
		return st
	}
	return StateIdle
}

// SetState sets the FSM state for the given user.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == StateIdle {
		delete(m.states, userID)
		return
	}
	m.states[userID] = st
}

// ClearState resets the user to idle.
func (m *memoryManager) ClearState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}

// InProgress reports whether the user currently has an active state.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[userID]
	return ok && st != StateIdle
}

// Bind associates a state with its handler.
func (m *memoryManager) Bind(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[st] = h
}

// Dispatch executes the handler registered for the user's current state, if any.
func (m *memoryManager) Dispatch(c tele.Context) error {
	userID := c.Sender().ID
	current := m.StateOf(userID)

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.dispatch",
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	m.mu.RLock()
	handler := m.handlers[current]
	m.mu.RUnlock()
	if handler == nil {
		return nil
	}
	return handler(c)
}
