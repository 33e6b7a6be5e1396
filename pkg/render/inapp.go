package render

import (
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

var inAppTemplates = map[blocks.BlockType]blockTemplate{
	blocks.BlockTypeHeader:    inAppHeader,
	blocks.BlockTypeParagraph: inAppParagraph,
	blocks.BlockTypeVariable:  inAppVariable,
	blocks.BlockTypeButton:    inAppButton,
	blocks.BlockTypeDivider:   inAppDivider,
	blocks.BlockTypeList:      inAppList,
	blocks.BlockTypeAlert:     inAppAlert,
}

func inAppChrome(rc *renderContext, body []Node) Node {
	p := rc.palette
	return Node{
		Kind:  KindRoot,
		Style: Style{Background: p.Surface, Color: p.Text, Border: "1px solid " + p.Border, Radius: "8px"},
		Children: []Node{
			{
				Kind:  KindPanelHeader,
				Text:  rc.renderer.opts.BrandName,
				Icon:  "bell",
				Style: Style{Color: p.MutedText, FontSize: "12px", FontWeight: "600", Padding: "8px 12px", Border: "1px solid " + p.Border},
			},
			{
				Kind:     KindBody,
				Style:    Style{Padding: "12px"},
				Children: body,
			},
		},
	}
}

func inAppHeader(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindHeading,
		Text:        text,
		Placeholder: placeholder,
		Style: Style{
			Color:      rc.palette.Text,
			FontSize:   "15px",
			FontWeight: "600",
			Padding:    "0 0 4px 0",
			Align:      string(b.Styles.AlignmentOr(blocks.AlignLeft)),
		},
	}
}

func inAppParagraph(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindText,
		Text:        text,
		Placeholder: placeholder,
		Style: Style{
			Color:    rc.palette.MutedText,
			FontSize: "13px",
			Padding:  "0 0 4px 0",
			Align:    string(b.Styles.AlignmentOr(blocks.AlignLeft)),
		},
	}
}

// inAppVariable renders an inline label/value row with a single-line value
func inAppVariable(rc *renderContext, b blocks.Block) Node {
	p := rc.palette
	f := rc.resolver.Resolve(b.Content)
	return Node{
		Kind:  KindVariableRow,
		Style: Style{FontSize: "13px", Padding: "2px 0"},
		Children: []Node{
			{Kind: KindLabel, Text: variables.Label(b.Content) + ":", Style: Style{Color: p.MutedText, FontSize: "12px"}},
			{Kind: KindValue, Children: []Node{fragmentNode(rc, f, true)}},
		},
	}
}

func inAppButton(rc *renderContext, b blocks.Block) Node {
	text, placeholder := rc.text(b)
	return Node{
		Kind:        KindButton,
		Text:        text,
		Href:        rc.buttonHref(),
		Placeholder: placeholder,
		Style: Style{
			Color:      rc.palette.Accent,
			FontSize:   "13px",
			FontWeight: "600",
			Padding:    "4px 0",
			Align:      string(b.Styles.AlignmentOr(blocks.AlignCenter)),
		},
	}
}

func inAppDivider(rc *renderContext, _ blocks.Block) Node {
	return Node{Kind: KindRule, Style: Style{Border: "1px solid " + rc.palette.Border, Padding: "6px 0"}}
}

func inAppList(rc *renderContext, b blocks.Block) Node {
	items := listItems(b.Content)
	node := Node{Kind: KindList, Style: Style{Color: rc.palette.Text, FontSize: "13px", Padding: "0 0 4px 16px"}}
	for _, item := range items {
		node.Children = append(node.Children, Node{Kind: KindListItem, Text: item})
	}
	return node
}

// inAppAlert tints the background instead of drawing a border
func inAppAlert(rc *renderContext, b blocks.Block) Node {
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
			FontSize:   "12px",
			Padding:    "6px 8px",
			Radius:     "6px",
		},
	}
}
