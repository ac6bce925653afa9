package state

import (
	"sync"
	"time"
)

// Manager tracks dialog state per user.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	now    func() time.Time
}

// NewManager returns an empty state manager.
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// GetState returns the user's current state.
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState sets the user's state.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	sm.entry(telegramID).State = state
}

// GetData returns a dialog value for the user.
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData stores a dialog value for the user.
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState drops the user's state and dialog data.
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Sweep drops dialogs untouched for longer than idle and returns how many.
func (sm *Manager) Sweep(idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-idle)
	removed := 0
	for id, userData := range sm.states {
		if userData.UpdatedAt.Before(cutoff) {
			delete(sm.states, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of users with an open dialog.
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.states)
}

// entry must be called with the write lock held.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[telegramID] = userData
	}
	userData.UpdatedAt = sm.now()
	return userData
}
