package variables

// CatalogVersion is bumped whenever a key is added to the catalog.
const CatalogVersion = 1

const (
	KeyName        = "nombre"
	KeyDescription = "descripcion"
	KeyDate        = "fecha"
	KeyResponsible = "responsable"
	KeyEntity      = "entidad"
	KeySeverity    = "severidad"
	KeyStatus      = "estado"
	KeyCreator     = "creador"
	KeyLink        = "enlace"
)

// Entry is one selectable variable of the block editor.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var catalog = []Entry{
	{Key: KeyName, Label: "Nombre"},
	{Key: KeyDescription, Label: "Descripción"},
	{Key: KeyDate, Label: "Fecha"},
	{Key: KeyResponsible, Label: "Responsable"},
	{Key: KeyEntity, Label: "Tipo de Entidad"},
	{Key: KeySeverity, Label: "Severidad"},
	{Key: KeyStatus, Label: "Estado"},
	{Key: KeyCreator, Label: "Creado por"},
	{Key: KeyLink, Label: "Enlace"},
}

// Catalog returns a copy of the catalog in display order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// DefaultKey is the key preselected in a freshly appended variable block.
func DefaultKey() string {
	return catalog[0].Key
}

// Lookup finds a catalog entry by key.
func Lookup(key string) (Entry, bool) {
	for _, e := range catalog {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Label returns the display label of key, or the key itself when it is not
// part of the catalog.
func Label(key string) string {
	if e, ok := Lookup(key); ok {
		return e.Label
	}
	if key == "" {
		return "Variable"
	}
	return key
}

// IsKnown reports whether key belongs to the catalog.
func IsKnown(key string) bool {
	_, ok := Lookup(key)
	return ok
}
