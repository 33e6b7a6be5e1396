package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcflow/notifcomposer/pkg/blocks"
)

func TestSession_AppendSelectsNewBlock(t *testing.T) {
	s := NewSession(blocks.Document{})
	var calls int
	s.Subscribe(func(blocks.Document, string) { calls++ })

	id := s.Append(blocks.BlockTypeHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, s.ActiveID())
	assert.Equal(t, 1, s.Document().Len())
	assert.Equal(t, 1, calls)

	assert.Equal(t, "", s.Append(blocks.BlockType("image")))
	assert.Equal(t, id, s.ActiveID())
	assert.Equal(t, 1, calls, "ignored appends do not notify")
}

func TestSession_RemoveClearsActiveSelection(t *testing.T) {
	s := NewSession(blocks.Document{})
	first := s.Append(blocks.BlockTypeHeader)
	second := s.Append(blocks.BlockTypeParagraph)

	s.Remove(first)
	assert.Equal(t, second, s.ActiveID(), "removing another block keeps the selection")

	s.Remove(second)
	assert.Equal(t, "", s.ActiveID())
	assert.True(t, s.Document().IsEmpty())
}

func TestSession_NoopsSkipHistoryAndListeners(t *testing.T) {
	s := NewSession(blocks.Document{})
	id := s.Append(blocks.BlockTypeHeader)
	var calls int
	s.Subscribe(func(blocks.Document, string) { calls++ })

	s.Remove("missing")
	s.Move(0, -1)
	s.Move(0, 1)
	s.UpdateContent("missing", "x")
	s.UpdateStyle("missing", blocks.Styles{Alignment: blocks.AlignRight})
	s.Select(id)

	assert.Equal(t, 0, calls)
	require.True(t, s.Undo())
	assert.False(t, s.CanUndo())
}

func TestSession_UndoRedo(t *testing.T) {
	s := NewSession(blocks.Document{})
	id := s.Append(blocks.BlockTypeHeader)
	s.UpdateContent(id, "Primero")
	s.UpdateContent(id, "Segundo")

	b, _ := s.Document().Find(id)
	assert.Equal(t, "Segundo", b.Content)

	require.True(t, s.Undo())
	b, _ = s.Document().Find(id)
	assert.Equal(t, "Primero", b.Content)

	require.True(t, s.Redo())
	b, _ = s.Document().Find(id)
	assert.Equal(t, "Segundo", b.Content)
	assert.False(t, s.Redo())

	require.True(t, s.Undo())
	s.UpdateContent(id, "Tercero")
	assert.False(t, s.CanRedo(), "a new change drops the redo branch")

	for s.Undo() {
	}
	assert.True(t, s.Document().IsEmpty())
	assert.Equal(t, "", s.ActiveID())
}

func TestSession_HistoryLimit(t *testing.T) {
	s := NewSession(blocks.Document{})
	s.SetHistoryLimit(3)
	id := s.Append(blocks.BlockTypeParagraph)
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		s.UpdateContent(id, v)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)
	b, _ := s.Document().Find(id)
	assert.Equal(t, "b", b.Content)
}

func TestSession_SelectAndUnsubscribe(t *testing.T) {
	s := NewSession(blocks.Document{})
	a := s.Append(blocks.BlockTypeHeader)
	b := s.Append(blocks.BlockTypeParagraph)

	var seen []string
	unsubscribe := s.Subscribe(func(_ blocks.Document, active string) { seen = append(seen, active) })

	s.Select(a)
	s.Select("missing")
	unsubscribe()
	s.Select(b)

	assert.Equal(t, []string{a, ""}, seen)
	assert.Equal(t, b, s.ActiveID())
}

func TestSession_Replace(t *testing.T) {
	s := NewSession(blocks.Document{})
	s.Append(blocks.BlockTypeHeader)

	loaded := blocks.NewDocument(blocks.Block{ID: "x", Type: blocks.BlockTypeDivider})
	s.Replace(loaded)
	assert.True(t, s.Document().Equal(loaded))
	assert.Equal(t, "", s.ActiveID())

	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Document().Len())
}
