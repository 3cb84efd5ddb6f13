package roster

import "shiftroster/internal/models"

// ChangeLog is the session-scoped undo stack. Entries are confirmed edits
// only; nothing speculative is ever pushed. It is unbounded and does not
// survive the session.
type ChangeLog struct {
	entries []models.Change
}

func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

// Push appends a confirmed edit.
func (l *ChangeLog) Push(c models.Change) {
	l.entries = append(l.entries, c)
}

// Pop removes and returns the most recent edit. Popping is destructive:
// there is no redo stack.
func (l *ChangeLog) Pop() (models.Change, error) {
	if len(l.entries) == 0 {
		return models.Change{}, ErrNothingToUndo
	}
	c := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return c, nil
}

// Len returns the number of undoable edits.
func (l *ChangeLog) Len() int {
	return len(l.entries)
}
