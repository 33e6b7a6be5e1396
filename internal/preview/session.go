package preview

import (
	"github.com/grcflow/notifcomposer/pkg/blocks"
)

// DefaultHistoryLimit bounds the undo stack of a session
const DefaultHistoryLimit = 50

// ChangeListener is called after every effective change of a session
type ChangeListener func(doc blocks.Document, activeID string)

// Session owns the document being edited in one wizard step: the current
// snapshot, the active block and the undo/redo history. It is not safe for
// concurrent use; each editor owns exactly one session.
type Session struct {
	doc       blocks.Document
	activeID  string
	undo      []snapshot
	redo      []snapshot
	limit     int
	listeners []ChangeListener
}

type snapshot struct {
	doc      blocks.Document
	activeID string
}

// NewSession starts a session on doc
func NewSession(doc blocks.Document) *Session {
	return &Session{doc: doc, limit: DefaultHistoryLimit}
}

// SetHistoryLimit changes how many undo steps are kept; values below 1 disable history
func (s *Session) SetHistoryLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
	s.trimUndo()
}

func (s *Session) Document() blocks.Document {
	return s.doc
}

// ActiveID returns the id of the selected block, or "" when none is
func (s *Session) ActiveID() string {
	return s.activeID
}

// Subscribe registers fn to run after each change. It returns a function
// that removes the subscription.
func (s *Session) Subscribe(fn ChangeListener) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// Append adds a block of type t and selects it. Unknown types are ignored.
func (s *Session) Append(t blocks.BlockType) string {
	next, b := s.doc.Append(t)
	if b.ID == "" {
		return ""
	}
	s.commit(next, b.ID)
	return b.ID
}

// Remove deletes the block and clears the selection if it was active
func (s *Session) Remove(id string) {
	active := s.activeID
	if active == id {
		active = ""
	}
	s.commit(s.doc.Remove(id), active)
}

// Move swaps the block at index with its neighbour in direction
func (s *Session) Move(index, direction int) {
	s.commit(s.doc.Move(index, direction), s.activeID)
}

func (s *Session) UpdateContent(id, value string) {
	s.commit(s.doc.UpdateContent(id, value), s.activeID)
}

func (s *Session) UpdateStyle(id string, partial blocks.Styles) {
	s.commit(s.doc.UpdateStyle(id, partial), s.activeID)
}

// Select makes id the active block. Unknown ids clear the selection.
// Selection changes are not recorded in history.
func (s *Session) Select(id string) {
	if s.doc.IndexOf(id) < 0 {
		id = ""
	}
	if id == s.activeID {
		return
	}
	s.activeID = id
	s.notify()
}

// Replace swaps the whole document, as when loading a saved rule
func (s *Session) Replace(doc blocks.Document) {
	s.commit(doc, "")
}

func (s *Session) CanUndo() bool {
	return len(s.undo) > 0
}

func (s *Session) CanRedo() bool {
	return len(s.redo) > 0
}

// Undo restores the previous snapshot; it is a no-op at the start of history
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, snapshot{doc: s.doc, activeID: s.activeID})
	s.restore(prev)
	return true
}

// Redo re-applies the last undone snapshot; it is a no-op at the end of history
func (s *Session) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, snapshot{doc: s.doc, activeID: s.activeID})
	s.trimUndo()
	s.restore(next)
	return true
}

func (s *Session) restore(snap snapshot) {
	s.doc = snap.doc
	s.activeID = snap.activeID
	if s.activeID != "" && s.doc.IndexOf(s.activeID) < 0 {
		s.activeID = ""
	}
	s.notify()
}

// commit records next as the current snapshot. Mutations that did not change
// the document (stale ids, boundary moves) leave history and listeners alone.
func (s *Session) commit(next blocks.Document, activeID string) {
	if next.Equal(s.doc) {
		if activeID != s.activeID {
			s.activeID = activeID
			s.notify()
		}
		return
	}
	s.undo = append(s.undo, snapshot{doc: s.doc, activeID: s.activeID})
	s.trimUndo()
	s.redo = nil
	s.doc = next
	s.activeID = activeID
	s.notify()
}

func (s *Session) trimUndo() {
	if over := len(s.undo) - s.limit; over > 0 {
		s.undo = append([]snapshot(nil), s.undo[over:]...)
	}
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		if fn != nil {
			fn(s.doc, s.activeID)
		}
	}
}
