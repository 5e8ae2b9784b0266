package tracker

// Hooks for the black-box tests in package tracker_test.

// Tick advances the timer-driven streams by one step, as Run's ticker does.
func (t *Tracker) Tick() { t.tick() }

// LiveDescription returns the pending description under the lock.
func (t *Tracker) LiveDescription() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.description
}
