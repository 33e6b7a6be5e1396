package render

import (
	"strings"

	"github.com/grcflow/notifcomposer/pkg/variables"
)

// toneForLevel maps a severity level to a pill tone
func toneForLevel(level string) ToneName {
	switch strings.ToLower(level) {
	case "success", "low":
		return ToneSuccess
	case "warn", "warning", "medium":
		return ToneWarning
	case "danger", "error", "high", "critical":
		return ToneDanger
	default:
		return ToneInfo
	}
}

// toneForColorClass guesses a pill tone from a status CSS class
func toneForColorClass(class string) ToneName {
	class = strings.ToLower(class)
	switch {
	case strings.Contains(class, "green"), strings.Contains(class, "success"):
		return ToneSuccess
	case strings.Contains(class, "yellow"), strings.Contains(class, "orange"), strings.Contains(class, "warn"):
		return ToneWarning
	case strings.Contains(class, "red"), strings.Contains(class, "danger"):
		return ToneDanger
	default:
		return ToneInfo
	}
}

func pill(p Palette, tone ToneName, fontSize string) Style {
	t := p.Tone(tone)
	return Style{
		Color:      t.Foreground,
		Background: t.Surface,
		FontSize:   fontSize,
		FontWeight: "600",
		Padding:    "2px 10px",
		Radius:     "999px",
	}
}

// fragmentNode builds the value node of a resolved variable. Compact
// rendering truncates free text to a single line.
func fragmentNode(rc *renderContext, f variables.Fragment, compact bool) Node {
	p := rc.palette
	fontSize := "15px"
	if compact {
		fontSize = "13px"
	}
	limit := 0
	if compact {
		limit = rc.renderer.opts.TruncateAt
	}

	switch f.Kind {
	case variables.FragmentText:
		text, cut := truncate(f.Text, limit)
		return Node{Kind: KindText, Text: text, Truncated: cut, Style: Style{Color: p.Text, FontSize: fontSize}}

	case variables.FragmentEntityBadge:
		text, cut := truncate(f.Text, limit)
		return Node{Kind: KindBadge, Text: text, Icon: f.Icon, Truncated: cut, Tone: ToneInfo, Style: pill(p, ToneInfo, fontSize)}

	case variables.FragmentUserChip:
		name, cut := truncate(f.Text, limit)
		return Node{
			Kind:      KindUserChip,
			Truncated: cut,
			Style:     Style{Color: p.Text, FontSize: fontSize},
			Children: []Node{
				{Kind: KindAvatar, Text: f.Initials, Style: Style{
					Color:      p.AccentText,
					Background: p.Accent,
					FontSize:   "11px",
					FontWeight: "700",
					Radius:     "50%",
					Padding:    "4px",
				}},
				{Kind: KindText, Text: name, Style: Style{Color: p.Text, FontSize: fontSize}},
			},
		}

	case variables.FragmentTag:
		tone := toneForLevel(f.Level)
		return Node{Kind: KindTag, Text: f.Text, Tone: tone, Style: pill(p, tone, fontSize)}

	case variables.FragmentStatusChip:
		tone := toneForColorClass(f.ColorClass)
		return Node{Kind: KindStatusChip, Text: f.Text, Tone: tone, Style: pill(p, tone, fontSize)}

	case variables.FragmentLink:
		if !variables.IsSafeLink(f.Href) {
			return Node{Kind: KindFallback, Text: variables.FallbackText, Style: Style{Color: p.MutedText, FontSize: fontSize}}
		}
		text, cut := truncate(f.Text, limit)
		return Node{Kind: KindLink, Text: text, Href: f.Href, Icon: "external-link", Truncated: cut, Style: Style{Color: p.Accent, FontSize: fontSize}}

	default:
		return Node{Kind: KindFallback, Text: variables.FallbackText, Style: Style{Color: p.MutedText, FontSize: fontSize}}
	}
}
