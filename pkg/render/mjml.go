package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"
)

// CompileEmailResult mirrors the compile response of the template API:
// on failure Success is false and Error carries the compiler message.
type CompileEmailResult struct {
	Success   bool          `json:"success"`
	MJML      *string       `json:"mjml,omitempty"`
	HTML      *string       `json:"html,omitempty"`
	PlainText *string       `json:"plainText,omitempty"`
	Error     *mjmlgo.Error `json:"error,omitempty"`
}

// ToMJML converts an email tree into an MJML document
func ToMJML(t *Tree) (string, error) {
	if t == nil {
		return "", fmt.Errorf("tree is nil")
	}
	if t.Channel != ChannelEmail {
		return "", fmt.Errorf("only email trees can be exported to MJML, got %s", t.Channel)
	}

	var header, body, footer Node
	for _, c := range t.Root.Children {
		switch c.Kind {
		case KindHeaderBand:
			header = c
		case KindBody:
			body = c
		case KindFooterBand:
			footer = c
		}
	}

	p := t.Palette
	var sb strings.Builder
	sb.WriteString(`<mjml><mj-head><mj-attributes><mj-all font-family="Helvetica, Arial, sans-serif" /></mj-attributes></mj-head>`)
	fmt.Fprintf(&sb, `<mj-body background-color="%s">`, attr(p.Background))

	fmt.Fprintf(&sb, `<mj-section background-color="%s" padding="%s"><mj-column>`, attr(header.Style.Background), attr(header.Style.Padding))
	fmt.Fprintf(&sb, `<mj-text color="%s" font-size="%s" font-weight="%s">%s</mj-text>`,
		attr(header.Style.Color), attr(header.Style.FontSize), attr(header.Style.FontWeight), html.EscapeString(header.Text))
	sb.WriteString(`</mj-column></mj-section>`)

	fmt.Fprintf(&sb, `<mj-section background-color="%s" padding="%s"><mj-column>`, attr(body.Style.Background), attr(body.Style.Padding))
	for _, n := range body.Children {
		writeMJMLBlock(&sb, t, n)
	}
	sb.WriteString(`</mj-column></mj-section>`)

	sb.WriteString(`<mj-section><mj-column>`)
	fmt.Fprintf(&sb, `<mj-text color="%s" font-size="%s" align="center">%s</mj-text>`,
		attr(footer.Style.Color), attr(footer.Style.FontSize), html.EscapeString(footer.Text))
	sb.WriteString(`</mj-column></mj-section>`)

	sb.WriteString(`</mj-body></mjml>`)
	return sb.String(), nil
}

func attr(v string) string {
	return html.EscapeString(v)
}

func writeMJMLBlock(sb *strings.Builder, t *Tree, n Node) {
	align := n.Style.Align
	if align == "" {
		align = "left"
	}
	switch n.Kind {
	case KindHeading, KindText:
		fmt.Fprintf(sb, `<mj-text color="%s" font-size="%s" font-weight="%s" align="%s">%s</mj-text>`,
			attr(n.Style.Color), attr(n.Style.FontSize), attr(orDefault(n.Style.FontWeight, "400")), attr(align), html.EscapeString(n.Text))
	case KindButton:
		fmt.Fprintf(sb, `<mj-button href="%s" background-color="%s" color="%s" border-radius="%s" font-size="%s" align="%s">%s</mj-button>`,
			attr(n.Href), attr(n.Style.Background), attr(n.Style.Color), attr(n.Style.Radius), attr(n.Style.FontSize), attr(align), html.EscapeString(n.Text))
	case KindRule:
		fmt.Fprintf(sb, `<mj-divider border-color="%s" border-width="1px" />`, attr(t.Palette.Border))
	default:
		// cards, lists, callouts and the empty state keep their HTML structure
		w := &htmlWriter{channel: t.Channel}
		w.node(n, false)
		fmt.Fprintf(sb, `<mj-text>%s</mj-text>`, w.sb.String())
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CompileEmail converts an email tree to MJML and compiles it to HTML.
// Compiler failures are reported in the result; the returned error is only
// set when the tree cannot be converted at all.
func CompileEmail(ctx context.Context, t *Tree) (*CompileEmailResult, error) {
	mjmlString, err := ToMJML(t)
	if err != nil {
		return nil, err
	}

	htmlResult, err := mjmlgo.ToHTML(ctx, mjmlString)
	if err != nil {
		return &CompileEmailResult{
			Success: false,
			MJML:    &mjmlString,
			Error: &mjmlgo.Error{
				Message: err.Error(),
			},
		}, nil
	}

	plain, err := PlainText(htmlResult)
	if err != nil {
		return &CompileEmailResult{
			Success: false,
			MJML:    &mjmlString,
			HTML:    &htmlResult,
			Error: &mjmlgo.Error{
				Message: err.Error(),
			},
		}, nil
	}

	return &CompileEmailResult{
		Success:   true,
		MJML:      &mjmlString,
		HTML:      &htmlResult,
		PlainText: &plain,
	}, nil
}
