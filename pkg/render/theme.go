package render

// Channel is the presentation context a document is projected into
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "in-app"
)

// Channels lists every supported channel
var Channels = []Channel{ChannelEmail, ChannelInApp}

func (c Channel) IsValid() bool {
	return c == ChannelEmail || c == ChannelInApp
}

// Theme selects the color palette
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Themes lists every supported theme
var Themes = []Theme{ThemeLight, ThemeDark}

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Tone is a surface/foreground color pair used by pills and callouts
type Tone struct {
	Surface    string `json:"surface"`
	Foreground string `json:"foreground"`
}

// Palette is the fixed set of color tokens both channels draw from.
// Switching themes only swaps the palette, never the tree structure.
type Palette struct {
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	MutedText  string `json:"mutedText"`
	Border     string `json:"border"`
	Accent     string `json:"accent"`
	AccentText string `json:"accentText"`
	Success    Tone   `json:"success"`
	Info       Tone   `json:"info"`
	Warning    Tone   `json:"warning"`
	Danger     Tone   `json:"danger"`
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#f4f6f8",
		Surface:    "#ffffff",
		Text:       "#1f2933",
		MutedText:  "#64748b",
		Border:     "#e2e8f0",
		Accent:     "#2563eb",
		AccentText: "#ffffff",
		Success:    Tone{Surface: "#dcfce7", Foreground: "#166534"},
		Info:       Tone{Surface: "#dbeafe", Foreground: "#1e40af"},
		Warning:    Tone{Surface: "#fef3c7", Foreground: "#92400e"},
		Danger:     Tone{Surface: "#fee2e2", Foreground: "#991b1b"},
	},
	ThemeDark: {
		Background: "#0f172a",
		Surface:    "#1e293b",
		Text:       "#e2e8f0",
		MutedText:  "#94a3b8",
		Border:     "#334155",
		Accent:     "#60a5fa",
		AccentText: "#0f172a",
		Success:    Tone{Surface: "#14532d", Foreground: "#bbf7d0"},
		Info:       Tone{Surface: "#1e3a8a", Foreground: "#bfdbfe"},
		Warning:    Tone{Surface: "#78350f", Foreground: "#fde68a"},
		Danger:     Tone{Surface: "#7f1d1d", Foreground: "#fecaca"},
	},
}

// PaletteFor returns the palette of theme; unknown themes get the light one
func PaletteFor(theme Theme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeLight]
}

// ToneName is the semantic tone of a pill or callout
type ToneName string

const (
	ToneSuccess ToneName = "success"
	ToneInfo    ToneName = "info"
	ToneWarning ToneName = "warning"
	ToneDanger  ToneName = "danger"
)

// Tone returns the color pair for name, info for anything unknown
func (p Palette) Tone(name ToneName) Tone {
	switch name {
	case ToneSuccess:
		return p.Success
	case ToneWarning:
		return p.Warning
	case ToneDanger:
		return p.Danger
	default:
		return p.Info
	}
}
