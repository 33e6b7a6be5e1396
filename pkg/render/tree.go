package render

import "strings"

// NodeKind names the structural role of a node in a RenderTree
type NodeKind string

// Chrome nodes
const (
	KindRoot        NodeKind = "root"
	KindHeaderBand  NodeKind = "headerBand"
	KindBody        NodeKind = "body"
	KindFooterBand  NodeKind = "footerBand"
	KindPanelHeader NodeKind = "panelHeader"
	KindEmptyState  NodeKind = "emptyState"
	KindIcon        NodeKind = "icon"
)

// Block nodes
const (
	KindHeading      NodeKind = "heading"
	KindText         NodeKind = "text"
	KindVariableCard NodeKind = "variableCard"
	KindVariableRow  NodeKind = "variableRow"
	KindLabel        NodeKind = "label"
	KindValue        NodeKind = "value"
	KindButton       NodeKind = "button"
	KindRule         NodeKind = "rule"
	KindList         NodeKind = "list"
	KindListItem     NodeKind = "listItem"
	KindCallout      NodeKind = "callout"
)

// Fragment nodes, one per variables.FragmentKind
const (
	KindBadge      NodeKind = "badge"
	KindUserChip   NodeKind = "userChip"
	KindAvatar     NodeKind = "avatar"
	KindTag        NodeKind = "tag"
	KindStatusChip NodeKind = "statusChip"
	KindLink       NodeKind = "link"
	KindFallback   NodeKind = "fallback"
)

// Style holds the presentation tokens of a node, already resolved against
// the active palette. Empty fields are not emitted.
type Style struct {
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	BorderLeft string `json:"borderLeft,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Padding    string `json:"padding,omitempty"`
	Radius     string `json:"radius,omitempty"`
	Align      string `json:"align,omitempty"`
}

// Node is one element of a RenderTree
type Node struct {
	Kind        NodeKind `json:"kind"`
	BlockID     string   `json:"blockId,omitempty"`
	Text        string   `json:"text,omitempty"`
	Href        string   `json:"href,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Tone        ToneName `json:"tone,omitempty"`
	Placeholder bool     `json:"placeholder,omitempty"`
	Truncated   bool     `json:"truncated,omitempty"`
	Style       Style    `json:"style"`
	Children    []Node   `json:"children,omitempty"`
}

// Tree is the structural output of rendering one document for a channel and theme
type Tree struct {
	Channel Channel `json:"channel"`
	Theme   Theme   `json:"theme"`
	Palette Palette `json:"palette"`
	Root    Node    `json:"root"`
}

// Walk visits n and its descendants depth first, stopping when fn returns false
func (n Node) Walk(fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns every descendant of n (n included) of the given kind
func (n Node) FindAll(kind NodeKind) []Node {
	var out []Node
	n.Walk(func(c Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextContent joins the Text of n and its descendants with single spaces
func (n Node) TextContent() string {
	var parts []string
	n.Walk(func(c Node) bool {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Body returns the body node of the tree
func (t *Tree) Body() Node {
	for _, c := range t.Root.Children {
		if c.Kind == KindBody {
			return c
		}
	}
	return Node{}
}

// BlockNodes returns the top-level nodes produced by blocks, in document order
func (t *Tree) BlockNodes() []Node {
	var out []Node
	for _, c := range t.Body().Children {
		if c.BlockID != "" {
			out = append(out, c)
		}
	}
	return out
}
