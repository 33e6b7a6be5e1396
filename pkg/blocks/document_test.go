package blocks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

// buildDocument appends one block of every type, in palette order.
func buildDocument(t *testing.T) Document {
	t.Helper()
	doc := Document{}
	for _, bt := range AllBlockTypes {
		doc, _ = doc.Append(bt)
	}
	require.Equal(t, len(AllBlockTypes), doc.Len())
	return doc
}

func TestDocument_Append(t *testing.T) {
	for _, bt := range AllBlockTypes {
		t.Run(string(bt), func(t *testing.T) {
			doc := buildDocument(t)
			before := doc.IDs()

			next, added := doc.Append(bt)

			assert.Equal(t, doc.Len()+1, next.Len())
			assert.NotEmpty(t, added.ID)
			assert.NotContains(t, before, added.ID)
			last, ok := next.At(next.Len() - 1)
			require.True(t, ok)
			assert.Equal(t, added, last)
			// receiver is untouched
			assert.Equal(t, before, doc.IDs())
		})
	}
}

func TestDocument_AppendDefaults(t *testing.T) {
	tests := []struct {
		blockType BlockType
		content   string
		styles    Styles
	}{
		{BlockTypeHeader, "", Styles{Alignment: AlignLeft}},
		{BlockTypeParagraph, "", Styles{Alignment: AlignLeft}},
		{BlockTypeVariable, "nombre", Styles{Alignment: AlignLeft}},
		{BlockTypeButton, "Ver detalles", Styles{Alignment: AlignLeft}},
		{BlockTypeDivider, "", Styles{Alignment: AlignLeft}},
		{BlockTypeList, "", Styles{Alignment: AlignLeft}},
		{BlockTypeAlert, "", Styles{Alignment: AlignLeft, Color: AlertInfo}},
	}

	for _, tt := range tests {
		t.Run(string(tt.blockType), func(t *testing.T) {
			_, b := Document{}.Append(tt.blockType)
			assert.Equal(t, tt.blockType, b.Type)
			assert.Equal(t, tt.content, b.Content)
			assert.Equal(t, tt.styles, b.Styles)
		})
	}
}

func TestDocument_AppendUnknownTypeIsNoop(t *testing.T) {
	doc := buildDocument(t)
	next, b := doc.Append(BlockType("image"))
	assert.True(t, next.Equal(doc))
	assert.Equal(t, Block{}, b)
}

func TestDocument_AppendRegeneratesCollidingID(t *testing.T) {
	ids := []string{"fixed", "fixed", "other"}
	orig := newID
	newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	defer func() { newID = orig }()

	doc, first := Document{}.Append(BlockTypeHeader)
	doc, second := doc.Append(BlockTypeParagraph)

	assert.Equal(t, "fixed", first.ID)
	assert.Equal(t, "other", second.ID)
	assert.Equal(t, []string{"fixed", "other"}, doc.IDs())
}

func TestDocument_Remove(t *testing.T) {
	doc := buildDocument(t)
	target, _ := doc.At(2)

	once := doc.Remove(target.ID)
	assert.Equal(t, doc.Len()-1, once.Len())
	assert.Equal(t, -1, once.IndexOf(target.ID))

	twice := once.Remove(target.ID)
	assert.True(t, twice.Equal(once))

	assert.True(t, doc.Remove("missing").Equal(doc))
	assert.True(t, Document{}.Remove("missing").IsEmpty())
}

func TestDocument_MoveBoundaries(t *testing.T) {
	doc := buildDocument(t)

	assert.True(t, doc.Move(0, -1).Equal(doc))
	assert.True(t, doc.Move(doc.Len()-1, 1).Equal(doc))
	assert.True(t, doc.Move(-1, 1).Equal(doc))
	assert.True(t, doc.Move(doc.Len(), -1).Equal(doc))
	assert.True(t, doc.Move(1, 2).Equal(doc))
	assert.True(t, doc.Move(1, 0).Equal(doc))
	assert.True(t, Document{}.Move(0, 1).IsEmpty())

	single, _ := Document{}.Append(BlockTypeHeader)
	assert.True(t, single.Move(0, 1).Equal(single))
	assert.True(t, single.Move(0, -1).Equal(single))
}

func TestDocument_MoveIsSelfInverse(t *testing.T) {
	doc := buildDocument(t)
	for i := 0; i < doc.Len()-1; i++ {
		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			moved := doc.Move(i, 1)
			assert.False(t, moved.Equal(doc))

			a, _ := doc.At(i)
			b, _ := moved.At(i + 1)
			assert.Equal(t, a, b, "block keeps its id and content across the swap")

			restored := moved.Move(i+1, -1)
			assert.True(t, restored.Equal(doc))
		})
	}
}

func TestDocument_UpdateContent(t *testing.T) {
	doc := buildDocument(t)
	header, _ := doc.At(0)

	next := doc.UpdateContent(header.ID, "Nuevo riesgo identificado")
	updated, ok := next.Find(header.ID)
	require.True(t, ok)
	assert.Equal(t, "Nuevo riesgo identificado", updated.Content)

	original, _ := doc.Find(header.ID)
	assert.Equal(t, "", original.Content)

	assert.True(t, doc.UpdateContent("missing", "x").Equal(doc))
}

func TestDocument_UpdateStyle(t *testing.T) {
	doc := buildDocument(t)
	alert, _ := doc.At(6)
	require.Equal(t, BlockTypeAlert, alert.Type)

	next := doc.UpdateStyle(alert.ID, Styles{Color: AlertDanger})
	updated, _ := next.Find(alert.ID)
	assert.Equal(t, AlertDanger, updated.Styles.Color)
	assert.Equal(t, AlignLeft, updated.Styles.Alignment, "unspecified keys are untouched")

	next = next.UpdateStyle(alert.ID, Styles{Alignment: AlignRight, Bold: boolPtr(true)})
	updated, _ = next.Find(alert.ID)
	assert.Equal(t, AlertDanger, updated.Styles.Color)
	assert.Equal(t, AlignRight, updated.Styles.Alignment)
	require.NotNil(t, updated.Styles.Bold)
	assert.True(t, *updated.Styles.Bold)

	assert.True(t, doc.UpdateStyle("missing", Styles{Color: AlertWarning}).Equal(doc))
}

func TestNewDocument_EnsuresUniqueIDs(t *testing.T) {
	doc := NewDocument(
		Block{ID: "a", Type: BlockTypeHeader},
		Block{ID: "a", Type: BlockTypeParagraph},
		Block{ID: "", Type: BlockTypeDivider},
	)

	ids := doc.IDs()
	require.Len(t, ids, 3)
	assert.Equal(t, "a", ids[0])
	assert.NotEqual(t, "a", ids[1])
	assert.NotEmpty(t, ids[2])
	assert.NotEqual(t, ids[1], ids[2])
}

func TestDocument_BlocksReturnsCopy(t *testing.T) {
	doc := buildDocument(t)
	bs := doc.Blocks()
	bs[0].Content = "mutated"

	first, _ := doc.At(0)
	assert.Equal(t, "", first.Content)
}

func TestStyles(t *testing.T) {
	assert.Equal(t, AlignCenter, Styles{}.AlignmentOr(AlignCenter))
	assert.Equal(t, AlignRight, Styles{Alignment: AlignRight}.AlignmentOr(AlignCenter))
	assert.Equal(t, AlignLeft, Styles{Alignment: "justify"}.AlignmentOr(AlignLeft))
	assert.Equal(t, AlertInfo, Styles{}.AlertColorOr())
	assert.Equal(t, AlertWarning, Styles{Color: AlertWarning}.AlertColorOr())

	assert.True(t, Styles{Bold: boolPtr(true)}.Equal(Styles{Bold: boolPtr(true)}))
	assert.False(t, Styles{Bold: boolPtr(true)}.Equal(Styles{}))
}

func TestBlockType(t *testing.T) {
	for _, bt := range AllBlockTypes {
		assert.True(t, bt.IsValid())
	}
	assert.False(t, BlockType("image").IsValid())
	assert.True(t, BlockTypeAlert.IsTextBearing())
	assert.False(t, BlockTypeVariable.IsTextBearing())
	assert.False(t, BlockTypeList.IsTextBearing())
}
