package blocks

import "github.com/grcflow/notifcomposer/pkg/variables"

// BlockType is the closed set of content blocks a notification message is made of
type BlockType string

const (
	BlockTypeHeader    BlockType = "header"
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeVariable  BlockType = "variable"
	BlockTypeButton    BlockType = "button"
	BlockTypeDivider   BlockType = "divider"
	BlockTypeList      BlockType = "list"
	BlockTypeAlert     BlockType = "alert"
)

// AllBlockTypes lists every block type in palette order.
var AllBlockTypes = []BlockType{
	BlockTypeHeader,
	BlockTypeParagraph,
	BlockTypeVariable,
	BlockTypeButton,
	BlockTypeDivider,
	BlockTypeList,
	BlockTypeAlert,
}

// IsValid reports whether t is one of the known block types
func (t BlockType) IsValid() bool {
	for _, known := range AllBlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsTextBearing reports whether content of t is free text shown to the reader
func (t BlockType) IsTextBearing() bool {
	switch t {
	case BlockTypeHeader, BlockTypeParagraph, BlockTypeButton, BlockTypeAlert:
		return true
	}
	return false
}

// Alignment is the horizontal alignment of header, paragraph and button blocks
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func (a Alignment) IsValid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// AlertColor is the callout tone of an alert block
type AlertColor string

const (
	AlertInfo    AlertColor = "info"
	AlertWarning AlertColor = "warning"
	AlertDanger  AlertColor = "danger"
)

func (c AlertColor) IsValid() bool {
	return c == AlertInfo || c == AlertWarning || c == AlertDanger
}

// DefaultButtonLabel is the content given to a freshly appended button
const DefaultButtonLabel = "Ver detalles"

// Styles is a plain value; zero fields mean "not set".
// Bold, FontSize and BackgroundColor are reserved and not rendered yet.
type Styles struct {
	Alignment       Alignment  `json:"alignment,omitempty"`
	Color           AlertColor `json:"color,omitempty"`
	Bold            *bool      `json:"bold,omitempty"`
	FontSize        string     `json:"fontSize,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
}

// Merge returns s with every field set in partial overriding it.
func (s Styles) Merge(partial Styles) Styles {
	merged := s
	if partial.Alignment != "" {
		merged.Alignment = partial.Alignment
	}
	if partial.Color != "" {
		merged.Color = partial.Color
	}
	if partial.Bold != nil {
		b := *partial.Bold
		merged.Bold = &b
	}
	if partial.FontSize != "" {
		merged.FontSize = partial.FontSize
	}
	if partial.BackgroundColor != "" {
		merged.BackgroundColor = partial.BackgroundColor
	}
	return merged
}

// Equal compares two Styles by value
func (s Styles) Equal(o Styles) bool {
	if s.Alignment != o.Alignment || s.Color != o.Color || s.FontSize != o.FontSize || s.BackgroundColor != o.BackgroundColor {
		return false
	}
	if (s.Bold == nil) != (o.Bold == nil) {
		return false
	}
	return s.Bold == nil || *s.Bold == *o.Bold
}

// AlignmentOr returns the alignment, or def when unset or invalid
func (s Styles) AlignmentOr(def Alignment) Alignment {
	if s.Alignment.IsValid() {
		return s.Alignment
	}
	return def
}

// AlertColorOr returns the alert color, or info when unset or invalid
func (s Styles) AlertColorOr() AlertColor {
	if s.Color.IsValid() {
		return s.Color
	}
	return AlertInfo
}

// Block is one typed unit of notification content
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Content string    `json:"content"`
	Styles  Styles    `json:"styles"`
}

// Equal compares two blocks by value
func (b Block) Equal(o Block) bool {
	return b.ID == o.ID && b.Type == o.Type && b.Content == o.Content && b.Styles.Equal(o.Styles)
}

// NewBlock builds a block of type t with the editor defaults and a fresh id.
func NewBlock(t BlockType) Block {
	b := Block{
		ID:     newID(),
		Type:   t,
		Styles: DefaultStyles(t),
	}
	switch t {
	case BlockTypeVariable:
		b.Content = variables.DefaultKey()
	case BlockTypeButton:
		b.Content = DefaultButtonLabel
	}
	return b
}

// DefaultStyles returns the styles a new block of type t starts with
func DefaultStyles(t BlockType) Styles {
	s := Styles{Alignment: AlignLeft}
	if t == BlockTypeAlert {
		s.Color = AlertInfo
	}
	return s
}
