package blocks

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeError is returned when a persisted payload is not a JSON array of blocks
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid block document: %s", e.Reason)
}

// MarshalJSON encodes the document as an ordered array; empty documents
// encode as [] rather than null.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.blocks)
}

// UnmarshalJSON implements json.Unmarshaler through Decode
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// Decode parses a persisted block array. Only the outer shape is strict:
// elements are read field by field so a corrupted element never rejects the
// whole document. Unknown types are kept as-is (and render as nothing),
// missing content decodes as empty, missing styles get the type defaults and
// missing or duplicated ids are replaced.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return Document{}, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return Document{}, &DecodeError{Reason: "malformed JSON"}
	}

	root := gjson.ParseBytes(trimmed)
	if !root.IsArray() {
		return Document{}, &DecodeError{Reason: fmt.Sprintf("expected an array, got %s", root.Type)}
	}

	var decoded []Block
	root.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			return true
		}
		decoded = append(decoded, decodeBlock(el))
		return true
	})

	return NewDocument(decoded...), nil
}

func decodeBlock(el gjson.Result) Block {
	b := Block{
		ID:      el.Get("id").String(),
		Type:    BlockType(el.Get("type").String()),
		Content: el.Get("content").String(),
	}

	styles := el.Get("styles")
	if !styles.Exists() || !styles.IsObject() {
		b.Styles = DefaultStyles(b.Type)
		return b
	}

	b.Styles = Styles{
		Alignment:       Alignment(styles.Get("alignment").String()),
		Color:           AlertColor(styles.Get("color").String()),
		FontSize:        styles.Get("fontSize").String(),
		BackgroundColor: styles.Get("backgroundColor").String(),
	}
	if bold := styles.Get("bold"); bold.Exists() {
		v := bold.Bool()
		b.Styles.Bold = &v
	}
	return b
}

// Value implements driver.Valuer so documents can be stored in a JSONB column
func (d Document) Value() (driver.Value, error) {
	return d.MarshalJSON()
}

// Scan implements sql.Scanner
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = Document{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("type assertion to []byte failed, got %T", value)
	}

	return d.UnmarshalJSON(data)
}
