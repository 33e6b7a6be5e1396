package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/cache"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/tracing"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

type PreviewService struct {
	rules          domain.NotificationRuleRepository
	data           domain.PreviewDataProvider
	renderer       *render.Renderer
	compileEnabled bool
	compileCache   *cache.Cache[*render.CompileEmailResult]
	logger         logger.Logger
}

func NewPreviewService(
	rules domain.NotificationRuleRepository,
	data domain.PreviewDataProvider,
	renderer *render.Renderer,
	compileEnabled bool,
	logger logger.Logger,
) *PreviewService {
	return &PreviewService{
		rules:          rules,
		data:           data,
		renderer:       renderer,
		compileEnabled: compileEnabled,
		logger:         logger,
	}
}

// SetCompileCache memoizes compile results by their MJML source
func (s *PreviewService) SetCompileCache(c *cache.Cache[*render.CompileEmailResult]) {
	s.compileCache = c
}

// previewSource is what a preview renders: the document, the values it
// resolves against and the stored rule when it came from storage.
type previewSource struct {
	doc    blocks.Document
	values variables.Context
	rule   *domain.NotificationRule
}

// source loads a preview source. Inline blocks win over the stored rule; an
// inline context wins over sample data.
func (s *PreviewService) source(ctx context.Context, src domain.PreviewSource) (*previewSource, error) {
	out := &previewSource{}
	entityType := src.EntityType

	if src.EmailBlocks != nil {
		out.doc = *src.EmailBlocks
	} else {
		rule, err := s.rules.Get(ctx, src.RuleID)
		if err != nil {
			return nil, err
		}
		out.rule = rule
		out.doc = rule.EmailBlocks
		if entityType == "" {
			entityType = rule.EntityType
		}
	}

	if src.Context != nil {
		out.values = *src.Context
		return out, nil
	}

	sample, err := s.data.SampleContext(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample context: %w", err)
	}
	out.values = sample
	return out, nil
}

func (s *PreviewService) variant(ctx context.Context, doc blocks.Document, values variables.Context, channel render.Channel, theme render.Theme, format domain.PreviewFormat) domain.PreviewResponse {
	start := time.Now()
	tree := s.renderer.Render(doc, variables.NewResolver(values), channel, theme)

	resp := domain.PreviewResponse{Channel: tree.Channel, Theme: tree.Theme}
	if format == domain.PreviewFormatHTML {
		resp.HTML = tree.HTML()
	} else {
		resp.Tree = tree
	}

	tracing.RecordPreview(ctx, string(channel), string(theme), doc.Len(), time.Since(start), nil)
	return resp
}

func (s *PreviewService) Preview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PreviewService", "Preview")
	defer span.End()
	tracing.AddAttribute(ctx, "channel", string(req.Channel))
	tracing.AddAttribute(ctx, "theme", string(req.Theme))
	tracing.AddAttribute(ctx, "rule_id", req.RuleID)

	src, err := s.source(ctx, req.PreviewSource)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logPreviewError(req.RuleID, err)
		return nil, err
	}

	resp := s.variant(ctx, src.doc, src.values, req.Channel, req.Theme, req.Format)
	return &resp, nil
}

// PreviewAll renders every channel and theme concurrently. Variants are
// ordered channel first, then theme, following render.Channels and
// render.Themes.
func (s *PreviewService) PreviewAll(ctx context.Context, req domain.PreviewAllRequest) (*domain.PreviewAllResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PreviewService", "PreviewAll")
	defer span.End()
	tracing.AddAttribute(ctx, "rule_id", req.RuleID)

	src, err := s.source(ctx, req.PreviewSource)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logPreviewError(req.RuleID, err)
		return nil, err
	}

	variants := make([]domain.PreviewResponse, len(render.Channels)*len(render.Themes))
	g, gctx := errgroup.WithContext(ctx)

	for i, channel := range render.Channels {
		for j, theme := range render.Themes {
			idx := i*len(render.Themes) + j
			channel, theme := channel, theme
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				variants[idx] = s.variant(gctx, src.doc, src.values, channel, theme, req.Format)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to render previews: %w", err)
	}

	return &domain.PreviewAllResponse{Variants: variants}, nil
}

func (s *PreviewService) CompileEmail(ctx context.Context, req domain.CompileEmailRequest) (*render.CompileEmailResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PreviewService", "CompileEmail")
	defer span.End()
	tracing.AddAttribute(ctx, "theme", string(req.Theme))
	tracing.AddAttribute(ctx, "rule_id", req.RuleID)

	if !s.compileEnabled {
		return nil, domain.ErrCompileDisabled
	}

	src, err := s.source(ctx, req.PreviewSource)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logPreviewError(req.RuleID, err)
		return nil, err
	}
	if src.rule != nil && !src.rule.HasChannel(render.ChannelEmail) {
		return nil, domain.NewValidationError("notification rule does not deliver by email")
	}

	tree := s.renderer.Render(src.doc, variables.NewResolver(src.values), render.ChannelEmail, req.Theme)
	result, hit, err := s.compile(ctx, tree)
	tracing.AddAttribute(ctx, "cache_hit", hit)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("rule_id", req.RuleID).WithField("error", err.Error()).Error("Failed to compile email")
		return nil, fmt.Errorf("failed to compile email: %w", err)
	}

	if !result.Success {
		s.logger.WithFields(map[string]interface{}{
			"rule_id": req.RuleID,
			"theme":   string(req.Theme),
		}).Warn("Email compilation reported errors")
	}
	return result, nil
}

func (s *PreviewService) compile(ctx context.Context, tree *render.Tree) (*render.CompileEmailResult, bool, error) {
	if s.compileCache == nil {
		result, err := render.CompileEmail(ctx, tree)
		return result, false, err
	}

	mjml, err := render.ToMJML(tree)
	if err != nil {
		return nil, false, err
	}
	sum := sha256.Sum256([]byte(mjml))
	return s.compileCache.GetOrCompute(hex.EncodeToString(sum[:]), func() (*render.CompileEmailResult, error) {
		return render.CompileEmail(ctx, tree)
	})
}

func (s *PreviewService) Catalog(ctx context.Context) *domain.CatalogResponse {
	return &domain.CatalogResponse{
		Version: variables.CatalogVersion,
		Entries: variables.Catalog(),
	}
}

func (s *PreviewService) logPreviewError(ruleID string, err error) {
	if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
		return
	}
	s.logger.WithField("rule_id", ruleID).WithField("error", err.Error()).Error("Failed to load preview source")
}
