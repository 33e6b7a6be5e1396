package render

import (
	"strings"
	"unicode/utf8"

	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

// Options configures the channel chrome and text limits
type Options struct {
	BrandName     string
	LogoText      string
	FooterText    string
	TruncateAt    int
	LiquidMaxSize int
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		BrandName:     "GRC Flow",
		LogoText:      "GRC Flow",
		FooterText:    "Este es un mensaje automático. Por favor no respondas a este correo.",
		TruncateAt:    60,
		LiquidMaxSize: DefaultLiquidMaxSize,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.BrandName == "" {
		o.BrandName = def.BrandName
	}
	if o.LogoText == "" {
		o.LogoText = o.BrandName
	}
	if o.FooterText == "" {
		o.FooterText = def.FooterText
	}
	if o.TruncateAt <= 0 {
		o.TruncateAt = def.TruncateAt
	}
	if o.LiquidMaxSize <= 0 {
		o.LiquidMaxSize = def.LiquidMaxSize
	}
	return o
}

// blockTemplate renders one block for one channel
type blockTemplate func(rc *renderContext, b blocks.Block) Node

// templates holds one template per block type per channel. A missing entry
// means the block is skipped, which only happens for unknown types.
var templates = map[Channel]map[blocks.BlockType]blockTemplate{
	ChannelEmail: emailTemplates,
	ChannelInApp: inAppTemplates,
}

// placeholders substitute empty text content so a preview is never blank
var placeholders = map[Channel]map[blocks.BlockType]string{
	ChannelEmail: {
		blocks.BlockTypeHeader:    "Título de la Notificación",
		blocks.BlockTypeParagraph: "Contenido del párrafo...",
		blocks.BlockTypeButton:    blocks.DefaultButtonLabel,
		blocks.BlockTypeAlert:     "Mensaje de alerta...",
	},
	ChannelInApp: {
		blocks.BlockTypeHeader:    "Nueva notificación",
		blocks.BlockTypeParagraph: "Contenido de la notificación...",
		blocks.BlockTypeButton:    blocks.DefaultButtonLabel,
		blocks.BlockTypeAlert:     "Mensaje de alerta...",
	},
}

// Placeholder returns the text shown for an empty block of type t on channel
func Placeholder(channel Channel, t blocks.BlockType) string {
	return placeholders[channel][t]
}

// Renderer projects block documents into render trees
type Renderer struct {
	opts   Options
	logger logger.Logger
	liquid *interpolator
}

// NewRenderer creates a renderer. Zero option fields take their defaults.
func NewRenderer(opts Options, log logger.Logger) *Renderer {
	opts = opts.withDefaults()
	return &Renderer{
		opts:   opts,
		logger: log,
		liquid: newInterpolator(opts.LiquidMaxSize),
	}
}

// Options returns the effective options of the renderer
func (r *Renderer) Options() Options {
	return r.opts
}

// Render builds the tree of doc for channel and theme. It is a pure function
// of its inputs: identical arguments produce identical trees. Blocks of an
// unknown type are logged and produce no node. An unknown channel renders as
// email and an unknown theme uses the light palette.
func (r *Renderer) Render(doc blocks.Document, resolver variables.Resolver, channel Channel, theme Theme) *Tree {
	if !channel.IsValid() {
		r.logger.WithField("channel", string(channel)).Warn("Unknown channel, rendering as email")
		channel = ChannelEmail
	}
	if !theme.IsValid() {
		theme = ThemeLight
	}
	if resolver == nil {
		resolver = variables.NewResolver(variables.Context{})
	}

	rc := &renderContext{
		renderer: r,
		channel:  channel,
		theme:    theme,
		palette:  PaletteFor(theme),
		resolver: resolver,
	}

	var body []Node
	if doc.IsEmpty() {
		body = []Node{emptyState(rc)}
	} else {
		table := templates[channel]
		for _, b := range doc.Blocks() {
			tmpl, ok := table[b.Type]
			if !ok {
				r.logger.WithFields(map[string]interface{}{
					"block_id":   b.ID,
					"block_type": string(b.Type),
					"channel":    string(channel),
				}).Warn("Skipping block with unknown type")
				continue
			}
			node := tmpl(rc, b)
			node.BlockID = b.ID
			body = append(body, node)
		}
	}

	var root Node
	if channel == ChannelEmail {
		root = emailChrome(rc, body)
	} else {
		root = inAppChrome(rc, body)
	}

	return &Tree{
		Channel: channel,
		Theme:   theme,
		Palette: rc.palette,
		Root:    root,
	}
}

// renderContext carries the per-call state shared by the block templates
type renderContext struct {
	renderer *Renderer
	channel  Channel
	theme    Theme
	palette  Palette
	resolver variables.Resolver
	values   map[string]interface{}
}

// text returns the display text of a text-bearing block: the channel
// placeholder when empty, otherwise the content with inline references
// interpolated.
func (rc *renderContext) text(b blocks.Block) (string, bool) {
	if strings.TrimSpace(b.Content) == "" {
		return Placeholder(rc.channel, b.Type), true
	}
	if !hasLiquidMarkup(b.Content) {
		return b.Content, false
	}
	if rc.values == nil {
		rc.values = rc.resolver.Values()
	}
	out, err := rc.renderer.liquid.Interpolate(b.Content, rc.values)
	if err != nil {
		rc.renderer.logger.WithFields(map[string]interface{}{
			"block_id":   b.ID,
			"block_type": string(b.Type),
			"channel":    string(rc.channel),
			"error":      err.Error(),
		}).Warn("Failed to interpolate block content, showing raw text")
		return b.Content, false
	}
	return out, false
}

// buttonHref points call-to-action buttons at the entity link
func (rc *renderContext) buttonHref() string {
	f := rc.resolver.Resolve(variables.KeyLink)
	if f.Kind == variables.FragmentLink && variables.IsSafeLink(f.Href) {
		return f.Href
	}
	return "#"
}

// listItems splits list content on newlines, dropping blank lines
func listItems(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// alertIcons maps alert colors to their icon names
var alertIcons = map[blocks.AlertColor]string{
	blocks.AlertInfo:    "info-circle",
	blocks.AlertWarning: "exclamation-triangle",
	blocks.AlertDanger:  "times-circle",
}

func alertTone(c blocks.AlertColor) ToneName {
	switch c {
	case blocks.AlertWarning:
		return ToneWarning
	case blocks.AlertDanger:
		return ToneDanger
	default:
		return ToneInfo
	}
}

// truncate shortens s to at most n runes, ending with an ellipsis
func truncate(s string, n int) (string, bool) {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n-1]), " ") + "…", true
}

func emptyState(rc *renderContext) Node {
	icon, hint := "envelope", "Agrega bloques para construir el mensaje"
	padding := "48px 24px"
	if rc.channel == ChannelInApp {
		icon, hint = "bell", "Sin contenido para mostrar"
		padding = "24px 12px"
	}
	return Node{
		Kind:  KindEmptyState,
		Style: Style{Color: rc.palette.MutedText, Align: "center", Padding: padding},
		Children: []Node{
			{Kind: KindIcon, Icon: icon, Style: Style{Color: rc.palette.MutedText, FontSize: "32px"}},
			{Kind: KindText, Text: hint, Style: Style{Color: rc.palette.MutedText, FontSize: "14px"}},
		},
	}
}
