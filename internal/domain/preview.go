package domain

import (
	"context"
	"fmt"

	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

//go:generate mockgen -destination mocks/mock_preview_service.go -package mocks github.com/grcflow/notifcomposer/internal/domain PreviewService
//go:generate mockgen -destination mocks/mock_preview_data_provider.go -package mocks github.com/grcflow/notifcomposer/internal/domain PreviewDataProvider

// PreviewFormat selects how a preview is returned
type PreviewFormat string

const (
	PreviewFormatTree PreviewFormat = "tree"
	PreviewFormatHTML PreviewFormat = "html"
)

// PreviewSource identifies the document to preview: a stored rule or an
// unsaved document from the editor. EmailBlocks wins when both are set.
type PreviewSource struct {
	RuleID      string             `json:"ruleId,omitempty"`
	EmailBlocks *blocks.Document   `json:"emailBlocks,omitempty"`
	EntityType  string             `json:"entityType,omitempty"`
	Context     *variables.Context `json:"context,omitempty"`
}

func (s *PreviewSource) validate(op string) error {
	if s.RuleID == "" && s.EmailBlocks == nil {
		return fmt.Errorf("invalid %s request: ruleId or emailBlocks is required", op)
	}
	return nil
}

// PreviewRequest defines the request structure for previewing one channel/theme
type PreviewRequest struct {
	PreviewSource
	Channel render.Channel `json:"channel"`
	Theme   render.Theme   `json:"theme"`
	Format  PreviewFormat  `json:"format"`
}

// Validate checks the request and fills in defaults
func (r *PreviewRequest) Validate() error {
	if err := r.validate("preview"); err != nil {
		return err
	}
	if r.Channel == "" {
		r.Channel = render.ChannelEmail
	}
	if !r.Channel.IsValid() {
		return fmt.Errorf("invalid preview request: unsupported channel %q", r.Channel)
	}
	if r.Theme == "" {
		r.Theme = render.ThemeLight
	}
	if !r.Theme.IsValid() {
		return fmt.Errorf("invalid preview request: unsupported theme %q", r.Theme)
	}
	if r.Format == "" {
		r.Format = PreviewFormatTree
	}
	if r.Format != PreviewFormatTree && r.Format != PreviewFormatHTML {
		return fmt.Errorf("invalid preview request: format must be tree or html")
	}
	return nil
}

// PreviewResponse carries either the tree or its HTML serialization
type PreviewResponse struct {
	Channel render.Channel `json:"channel"`
	Theme   render.Theme   `json:"theme"`
	Tree    *render.Tree   `json:"tree,omitempty"`
	HTML    string         `json:"html,omitempty"`
}

// PreviewAllRequest defines the request structure for previewing every channel and theme
type PreviewAllRequest struct {
	PreviewSource
	Format PreviewFormat `json:"format"`
}

func (r *PreviewAllRequest) Validate() error {
	if err := r.validate("preview all"); err != nil {
		return err
	}
	if r.Format == "" {
		r.Format = PreviewFormatTree
	}
	if r.Format != PreviewFormatTree && r.Format != PreviewFormatHTML {
		return fmt.Errorf("invalid preview all request: format must be tree or html")
	}
	return nil
}

// PreviewAllResponse holds one preview per channel and theme, channels first
type PreviewAllResponse struct {
	Variants []PreviewResponse `json:"variants"`
}

// CompileEmailRequest defines the request structure for exporting the email channel
type CompileEmailRequest struct {
	PreviewSource
	Theme render.Theme `json:"theme"`
}

func (r *CompileEmailRequest) Validate() error {
	if err := r.validate("compile email"); err != nil {
		return err
	}
	if r.Theme == "" {
		r.Theme = render.ThemeLight
	}
	if !r.Theme.IsValid() {
		return fmt.Errorf("invalid compile email request: unsupported theme %q", r.Theme)
	}
	return nil
}

// CatalogResponse lists the selectable variables
type CatalogResponse struct {
	Version int               `json:"version"`
	Entries []variables.Entry `json:"entries"`
}

// PreviewService renders notification documents for the editor
type PreviewService interface {
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	PreviewAll(ctx context.Context, req PreviewAllRequest) (*PreviewAllResponse, error)
	CompileEmail(ctx context.Context, req CompileEmailRequest) (*render.CompileEmailResult, error)
	Catalog(ctx context.Context) *CatalogResponse
}

// PreviewDataProvider supplies the sample values variables resolve against
type PreviewDataProvider interface {
	SampleContext(ctx context.Context, entityType string) (variables.Context, error)
}
