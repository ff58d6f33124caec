package screen

// Manager keeps the overlay stack. The last pushed screen is current.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		stack: make([]Screen, 0),
	}
}

// Push makes s the current screen, keeping the previous one below it.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop removes the current screen and restores the previous one.
// Returns the removed screen, or nil if no screen was active.
func (m *Manager) Pop() Screen {
	removed := m.current
	if len(m.stack) > 0 {
		m.current = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
	} else {
		m.current = nil
	}
	return removed
}

// Remove drops s wherever it sits in the stack. Screens pushed while s was
// handling a key stay in place.
func (m *Manager) Remove(s Screen) bool {
	if s == nil {
		return false
	}
	if m.current == s {
		m.Pop()
		return true
	}
	for i, candidate := range m.stack {
		if candidate == s {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps old for next in place.
func (m *Manager) Replace(old, next Screen) {
	if next == nil {
		m.Remove(old)
		return
	}
	if m.current == old {
		m.current = next
		return
	}
	for i, candidate := range m.stack {
		if candidate == old {
			m.stack[i] = next
			return
		}
	}
}

// Current returns the active screen, or nil if none.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether a screen is displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Resize forwards a terminal size change to every resizable screen.
func (m *Manager) Resize(width, height int) {
	for _, s := range append(append([]Screen(nil), m.stack...), m.current) {
		if r, ok := s.(Resizable); ok {
			r.Resize(width, height)
		}
	}
}

// Clear removes all screens.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}

// StackDepth returns the number of screens below the current one.
func (m *Manager) StackDepth() int {
	return len(m.stack)
}
