package testingutils

import (
	"sync"
)

// RecordingActuator remembers every command it receives.
// If Err is set, commands are rejected with it.
type RecordingActuator struct {
	mu       sync.Mutex
	commands []int
	Err      error
}

func (a *RecordingActuator) Command(value int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.commands = append(a.commands, value)
	return nil
}

func (a *RecordingActuator) Commands() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]int, len(a.commands))
	copy(result, a.commands)
	return result
}

func (a *RecordingActuator) SetErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Err = err
}
