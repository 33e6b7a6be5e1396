package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTML serializes the tree into a self-contained HTML fragment with inline
// styles. Output is deterministic for a given tree.
func (t *Tree) HTML() string {
	w := &htmlWriter{channel: t.Channel}
	w.node(t.Root, false)
	return w.sb.String()
}

type htmlWriter struct {
	sb      strings.Builder
	channel Channel
}

func (w *htmlWriter) open(tag, class string, n Node, extra ...string) {
	w.sb.WriteString("<" + tag)
	if n.Placeholder {
		class += " nc-placeholder"
	}
	w.sb.WriteString(` class="` + class + `"`)
	if n.BlockID != "" {
		w.attr("data-block-id", n.BlockID)
	}
	if n.Tone != "" {
		w.attr("data-tone", string(n.Tone))
	}
	if n.Truncated {
		w.attr("data-truncated", "true")
	}
	for i := 0; i+1 < len(extra); i += 2 {
		w.attr(extra[i], extra[i+1])
	}
	if css := n.Style.CSS(); css != "" {
		w.attr("style", css)
	}
	w.sb.WriteString(">")
}

func (w *htmlWriter) attr(name, value string) {
	fmt.Fprintf(&w.sb, ` %s="%s"`, name, html.EscapeString(value))
}

func (w *htmlWriter) text(s string) {
	w.sb.WriteString(html.EscapeString(s))
}

func (w *htmlWriter) icon(name string) {
	if name != "" {
		w.sb.WriteString(`<span class="nc-icon" data-icon="` + html.EscapeString(name) + `" aria-hidden="true"></span>`)
	}
}

func (w *htmlWriter) children(n Node, inline bool) {
	for _, c := range n.Children {
		w.node(c, inline)
	}
}

func (w *htmlWriter) element(tag, class string, n Node, inline bool, extra ...string) {
	w.open(tag, class, n, extra...)
	w.icon(n.Icon)
	w.text(n.Text)
	w.children(n, inline)
	w.sb.WriteString("</" + tag + ">")
}

// node writes n; inline selects span-level tags for generic text nodes
func (w *htmlWriter) node(n Node, inline bool) {
	switch n.Kind {
	case KindRoot:
		w.element("div", "nc-root nc-"+string(w.channel), n, false)
	case KindHeaderBand:
		w.element("div", "nc-header", n, false)
	case KindBody:
		w.element("div", "nc-body", n, false)
	case KindFooterBand:
		w.element("div", "nc-footer", n, false)
	case KindPanelHeader:
		w.element("div", "nc-panel-header", n, true)
	case KindEmptyState:
		w.element("div", "nc-empty", n, false)
	case KindIcon:
		w.icon(n.Icon)
	case KindHeading:
		tag := "h1"
		if w.channel == ChannelInApp {
			tag = "h3"
		}
		w.element(tag, "nc-heading", n, true)
	case KindText:
		if inline {
			w.element("span", "nc-text", n, true)
		} else {
			w.element("p", "nc-text", n, true)
		}
	case KindVariableCard:
		w.element("div", "nc-variable-card", n, false)
	case KindVariableRow:
		w.element("div", "nc-variable-row", n, true)
	case KindLabel:
		if inline {
			w.element("span", "nc-label", n, true)
		} else {
			w.element("div", "nc-label", n, true)
		}
	case KindValue:
		if inline {
			w.element("span", "nc-value", n, true)
		} else {
			w.element("div", "nc-value", n, true)
		}
	case KindButton:
		align := n.Style.Align
		n.Style.Align = ""
		w.sb.WriteString(`<div class="nc-button-row" style="text-align:` + html.EscapeString(align) + `">`)
		w.element("a", "nc-button", n, true, "href", n.Href)
		w.sb.WriteString("</div>")
	case KindRule:
		w.open("hr", "nc-rule", n)
	case KindList:
		w.element("ul", "nc-list", n, false)
	case KindListItem:
		w.element("li", "nc-list-item", n, true)
	case KindCallout:
		w.element("div", "nc-callout", n, true, "role", "alert")
	case KindBadge:
		w.element("span", "nc-badge", n, true)
	case KindUserChip:
		w.element("span", "nc-user-chip", n, true)
	case KindAvatar:
		w.element("span", "nc-avatar", n, true)
	case KindTag:
		w.element("span", "nc-tag", n, true)
	case KindStatusChip:
		w.element("span", "nc-status", n, true)
	case KindLink:
		w.open("a", "nc-link", n, "href", n.Href, "target", "_blank", "rel", "noopener")
		w.text(n.Text)
		w.icon(n.Icon)
		w.sb.WriteString("</a>")
	case KindFallback:
		w.element("span", "nc-fallback", n, true)
	}
}

// CSS renders the style as an inline declaration list in a fixed order
func (s Style) CSS() string {
	var decls []string
	add := func(prop, value string) {
		if value != "" {
			decls = append(decls, prop+":"+value)
		}
	}
	add("color", s.Color)
	add("background-color", s.Background)
	add("border", s.Border)
	add("border-left", s.BorderLeft)
	add("font-size", s.FontSize)
	add("font-weight", s.FontWeight)
	add("padding", s.Padding)
	add("border-radius", s.Radius)
	add("text-align", s.Align)
	return strings.Join(decls, ";")
}

var blockElements = map[string]bool{
	"div": true, "p": true, "h1": true, "h2": true, "h3": true,
	"ul": true, "ol": true, "li": true, "table": true, "tr": true,
}

// PlainText derives a text alternative from rendered HTML: one line per
// block element, list items prefixed with "- " and link targets appended in
// parentheses.
func PlainText(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("style, script, head, .nc-icon").Remove()

	var sb strings.Builder
	writePlain(&sb, doc.Find("body"))

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func writePlain(sb *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			sb.WriteString(c.Text())
		case name == "hr":
			sb.WriteString("\n----\n")
		case name == "br":
			sb.WriteString("\n")
		case name == "li":
			sb.WriteString("\n- ")
			writePlain(sb, c)
			sb.WriteString("\n")
		case name == "a":
			text := strings.TrimSpace(c.Text())
			sb.WriteString(" " + text)
			if href, ok := c.Attr("href"); ok && href != "" && href != "#" && href != text {
				sb.WriteString(" (" + href + ")")
			}
			sb.WriteString(" ")
		case blockElements[name]:
			sb.WriteString("\n")
			writePlain(sb, c)
			sb.WriteString("\n")
		default:
			writePlain(sb, c)
			sb.WriteString(" ")
		}
	})
}
