package preview

import (
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

// RenderListener receives every tree the controller produces
type RenderListener func(tree *render.Tree)

// Controller keeps the preview of a session in sync: it holds the selected
// channel, theme and preview context and re-renders synchronously whenever
// the session or any of them changes. It is the only caller of the renderer
// with live context data.
type Controller struct {
	session     *Session
	renderer    *render.Renderer
	logger      logger.Logger
	channel     render.Channel
	theme       render.Theme
	ctx         variables.Context
	tree        *render.Tree
	listeners   []RenderListener
	unsubscribe func()
}

// NewController attaches a controller to session and renders once
func NewController(session *Session, renderer *render.Renderer, log logger.Logger, ctx variables.Context) *Controller {
	c := &Controller{
		session:  session,
		renderer: renderer,
		logger:   log,
		channel:  render.ChannelEmail,
		theme:    render.ThemeLight,
		ctx:      ctx,
	}
	c.unsubscribe = session.Subscribe(func(blocks.Document, string) {
		c.rerender()
	})
	c.rerender()
	return c
}

func (c *Controller) Channel() render.Channel {
	return c.channel
}

func (c *Controller) Theme() render.Theme {
	return c.theme
}

// Tree returns the most recent render
func (c *Controller) Tree() *render.Tree {
	return c.tree
}

// OnRender registers fn to receive each new tree
func (c *Controller) OnRender(fn RenderListener) {
	c.listeners = append(c.listeners, fn)
}

// SetChannel switches the previewed channel; invalid values are ignored
func (c *Controller) SetChannel(ch render.Channel) {
	if !ch.IsValid() {
		c.logger.WithField("channel", string(ch)).Debug("Ignoring unknown preview channel")
		return
	}
	if ch == c.channel {
		return
	}
	c.channel = ch
	c.rerender()
}

// SetTheme switches the palette; invalid values are ignored
func (c *Controller) SetTheme(th render.Theme) {
	if !th.IsValid() {
		c.logger.WithField("theme", string(th)).Debug("Ignoring unknown preview theme")
		return
	}
	if th == c.theme {
		return
	}
	c.theme = th
	c.rerender()
}

// SetContext replaces the preview data the variables resolve against
func (c *Controller) SetContext(ctx variables.Context) {
	c.ctx = ctx
	c.rerender()
}

// Close detaches the controller from its session
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) rerender() {
	c.tree = c.renderer.Render(c.session.Document(), variables.NewResolver(c.ctx), c.channel, c.theme)
	for _, fn := range c.listeners {
		fn(c.tree)
	}
}
