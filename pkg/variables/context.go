package variables

// UserRef identifies a person shown as an avatar chip.
type UserRef struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// EntityType is the kind of GRC record the notification is about.
type EntityType struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Severity carries a tag label and its level (success, info, warn, danger).
type Severity struct {
	Label string `json:"label"`
	Level string `json:"level"`
}

// Status carries a chip label and the CSS color class of the chip.
type Status struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
}

// Context holds the runtime values substituted into variable blocks.
type Context struct {
	Name        string     `json:"nombre"`
	Description string     `json:"descripcion"`
	Date        string     `json:"fecha"`
	Responsible UserRef    `json:"responsable"`
	Entity      EntityType `json:"entidad"`
	Severity    Severity   `json:"severidad"`
	Status      Status     `json:"estado"`
	Creator     UserRef    `json:"creador"`
	Link        string     `json:"enlace"`
}
