package render

import (
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

var emailTemplates = map[blocks.BlockType]blockTemplate{
	blocks.BlockTypeHeader:    emailHeader,
	blocks.BlockTypeParagraph: emailParagraph,
	blocks.BlockTypeVariable:  emailVariable,
	blocks.BlockTypeButton:    emailButton,
	blocks.BlockTypeDivider:   emailDivider,
	blocks.BlockTypeList:      emailList,
	blocks.BlockTypeAlert:     emailAlert,
}

func emailChrome(rc *renderContext, body []Node) Node {
	p := rc.palette
	opts := rc.renderer.opts
	return Node{
		Kind:  KindRoot,
		Style: Style{Background: p.Background, Color: p.Text, Padding: "24px 0"},
		Children: []Node{
			{
				Kind:  KindHeaderBand,
				Text:  opts.LogoText,
				Style: Style{Background: p.Accent, Color: p.AccentText, FontSize: "20px", FontWeight: "700", Padding: "20px 32px", Align: "left"},
			},
			{
				Kind:     KindBody,
				Style:    Style{Background: p.Surface, Color: p.Text, Padding: "32px", Border: "1px solid " + p.Border},
				Children: body,
			},
			{
				Kind:  KindFooterBand,
				Text:  opts.FooterText,
				Style: Style{Color: p.MutedText, FontSize: "12px", Padding: "16px 32px", Align: "center"},
			},
		},
	}
}

func emailHeader(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindHeading,
		Text:        text,
		Placeholder: placeholder,
		Style: Style{
			Color:      rc.palette.Text,
			FontSize:   "24px",
			FontWeight: "700",
			Padding:    "0 0 12px 0",
			Align:      string(b.Styles.AlignmentOr(blocks.AlignLeft)),
		},
	}
}

func emailParagraph(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindText,
		Text:        text,
		Placeholder: placeholder,
		Style: Style{
			Color:    rc.palette.Text,
			FontSize: "15px",
			Padding:  "0 0 12px 0",
			Align:    string(b.Styles.AlignmentOr(blocks.AlignLeft)),
		},
	}
}

// emailVariable renders a two-row label/value card
func emailVariable(rc *renderContext, b blocks.Block) Node {
	p := rc.palette
	f := rc.resolver.Resolve(b.Content)
	return Node{
		Kind: KindVariableCard,
		Style: Style{
			Background: p.Background,
			Border:     "1px solid " + p.Border,
			Radius:     "8px",
			Padding:    "12px 16px",
		},
		Children: []Node{
			{Kind: KindLabel, Text: variables.Label(b.Content), Style: Style{Color: p.MutedText, FontSize: "12px", FontWeight: "600"}},
			{Kind: KindValue, Style: Style{Padding: "4px 0 0 0"}, Children: []Node{fragmentNode(rc, f, false)}},
		},
	}
}

func emailButton(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindButton,
		Text:        text,
		Href:        rc.buttonHref(),
		Placeholder: placeholder,
		Style: Style{
			Color:      rc.palette.AccentText,
			Background: rc.palette.Accent,
			FontSize:   "15px",
			FontWeight: "600",
			Padding:    "12px 24px",
			Radius:     "6px",
			Align:      string(b.Styles.AlignmentOr(blocks.AlignCenter)),
		},
	}
}

func emailDivider(rc *renderContext, _ blocks.Block) Node {
	return Node{Kind: KindRule, Style: Style{Border: "1px solid " + rc.palette.Border, Padding: "16px 0"}}
}

func emailList(rc *renderContext, b blocks.Block) Node {
	items := listItems(b.Content)
	node := Node{Kind: KindList, Style: Style{Color: rc.palette.Text, FontSize: "15px", Padding: "0 0 12px 20px"}}
	for _, item := range items {
		node.Children = append(node.Children, Node{Kind: KindListItem, Text: item, Style: Style{Padding: "2px 0"}})
	}
	return node
}

// emailAlert renders a callout with a colored left border
func emailAlert(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	color := b.Styles.AlertColorOr()
	tone := alertTone(color)
	t := rc.palette.Tone(tone)
	return Node{
		Kind:        KindCallout,
		Text:        text,
		Icon:        alertIcons[color],
		Tone:        tone,
		Placeholder: placeholder,
		Style: Style{
			Color:      t.Foreground,
			Background: t.Surface,
			BorderLeft: "4px solid " + t.Foreground,
			FontSize:   "14px",
			Padding:    "12px 16px",
			Radius:     "4px",
		},
	}
}
