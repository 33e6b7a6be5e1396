package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcflow/notifcomposer/internal/domain"
	domainmocks "github.com/grcflow/notifcomposer/internal/domain/mocks"
	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/cache"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

type previewFixture struct {
	svc  *service.PreviewService
	repo *domainmocks.MockNotificationRuleRepository
	data *domainmocks.MockPreviewDataProvider
}

func setupPreviewServiceTest(t *testing.T, ctrl *gomock.Controller, compileEnabled bool) previewFixture {
	repo := domainmocks.NewMockNotificationRuleRepository(ctrl)
	data := domainmocks.NewMockPreviewDataProvider(ctrl)
	renderer := render.NewRenderer(render.DefaultOptions(), logger.NewTestLogger(t))
	return previewFixture{
		svc:  service.NewPreviewService(repo, data, renderer, compileEnabled, newMockLogger(ctrl)),
		repo: repo,
		data: data,
	}
}

func sampleValues() variables.Context {
	return variables.Context{
		Name:     "Riesgo de fraude",
		Severity: variables.Severity{Label: "Alta", Level: "danger"},
		Link:     "https://grc.example.com/riesgos/1",
	}
}

func TestPreviewService_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("StoredRuleWithSampleData", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		f.repo.EXPECT().Get(gomock.Any(), "rule-1").Return(createTestRule("rule-1"), nil)
		f.data.EXPECT().SampleContext(gomock.Any(), "riesgo").Return(sampleValues(), nil)

		req := domain.PreviewRequest{PreviewSource: domain.PreviewSource{RuleID: "rule-1"}}
		require.NoError(t, req.Validate())

		resp, err := f.svc.Preview(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp.Tree)
		assert.Empty(t, resp.HTML)
		assert.Equal(t, render.ChannelEmail, resp.Channel)
		assert.Equal(t, render.ThemeLight, resp.Theme)

		nodes := resp.Tree.BlockNodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, "Nuevo riesgo: Riesgo de fraude", nodes[0].Text)
		assert.Contains(t, nodes[1].TextContent(), "Alta")
	})

	t.Run("InlineBlocksAndContextSkipStorage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		doc := blocks.NewDocument(blocks.Block{ID: "p", Type: blocks.BlockTypeParagraph, Content: "Hola {{ nombre }}"})
		values := sampleValues()
		req := domain.PreviewRequest{
			PreviewSource: domain.PreviewSource{RuleID: "ignored", EmailBlocks: &doc, Context: &values},
			Channel:       render.ChannelInApp,
			Theme:         render.ThemeDark,
			Format:        domain.PreviewFormatHTML,
		}

		resp, err := f.svc.Preview(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, resp.Tree)
		assert.Contains(t, resp.HTML, "Hola Riesgo de fraude")
		assert.Contains(t, resp.HTML, "nc-in-app")
		assert.Equal(t, render.ThemeDark, resp.Theme)
	})

	t.Run("InlineBlocksUseEntityTypeForSamples", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		doc := blocks.NewDocument(blocks.Block{ID: "v", Type: blocks.BlockTypeVariable, Content: "nombre"})
		f.data.EXPECT().SampleContext(gomock.Any(), "control").Return(sampleValues(), nil)

		_, err := f.svc.Preview(ctx, domain.PreviewRequest{
			PreviewSource: domain.PreviewSource{EmailBlocks: &doc, EntityType: "control"},
			Channel:       render.ChannelEmail,
			Theme:         render.ThemeLight,
		})
		require.NoError(t, err)
	})

	t.Run("RuleNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		notFound := &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
		f.repo.EXPECT().Get(gomock.Any(), "missing").Return(nil, notFound)

		_, err := f.svc.Preview(ctx, domain.PreviewRequest{PreviewSource: domain.PreviewSource{RuleID: "missing"}})
		assert.Equal(t, notFound, err)
	})

	t.Run("SampleDataError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		f.repo.EXPECT().Get(gomock.Any(), "rule-1").Return(createTestRule("rule-1"), nil)
		f.data.EXPECT().SampleContext(gomock.Any(), "riesgo").Return(variables.Context{}, errors.New("unavailable"))

		_, err := f.svc.Preview(ctx, domain.PreviewRequest{PreviewSource: domain.PreviewSource{RuleID: "rule-1"}})
		assert.ErrorContains(t, err, "failed to load sample context")
	})
}

func TestPreviewService_PreviewAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := setupPreviewServiceTest(t, ctrl, true)

	f.repo.EXPECT().Get(gomock.Any(), "rule-1").Return(createTestRule("rule-1"), nil)
	f.data.EXPECT().SampleContext(gomock.Any(), "riesgo").Return(sampleValues(), nil)

	resp, err := f.svc.PreviewAll(context.Background(), domain.PreviewAllRequest{
		PreviewSource: domain.PreviewSource{RuleID: "rule-1"},
		Format:        domain.PreviewFormatTree,
	})
	require.NoError(t, err)
	require.Len(t, resp.Variants, 4)

	want := []struct {
		channel render.Channel
		theme   render.Theme
	}{
		{render.ChannelEmail, render.ThemeLight},
		{render.ChannelEmail, render.ThemeDark},
		{render.ChannelInApp, render.ThemeLight},
		{render.ChannelInApp, render.ThemeDark},
	}
	for i, w := range want {
		v := resp.Variants[i]
		assert.Equal(t, w.channel, v.Channel)
		assert.Equal(t, w.theme, v.Theme)
		require.NotNil(t, v.Tree)
		assert.Equal(t, render.PaletteFor(w.theme), v.Tree.Palette)
	}

	// themes of one channel differ only in colors
	assert.Equal(t, resp.Variants[0].Tree.Body().TextContent(), resp.Variants[1].Tree.Body().TextContent())
}

func TestPreviewService_CompileEmail(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, false)

		_, err := f.svc.CompileEmail(context.Background(), domain.CompileEmailRequest{PreviewSource: domain.PreviewSource{RuleID: "rule-1"}})
		assert.ErrorIs(t, err, domain.ErrCompileDisabled)
	})

	t.Run("RuleWithoutEmailChannel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		rule := createTestRule("rule-2")
		rule.Channels = []render.Channel{render.ChannelInApp}
		f.repo.EXPECT().Get(gomock.Any(), "rule-2").Return(rule, nil)
		f.data.EXPECT().SampleContext(gomock.Any(), "riesgo").Return(sampleValues(), nil)

		_, err := f.svc.CompileEmail(context.Background(), domain.CompileEmailRequest{
			PreviewSource: domain.PreviewSource{RuleID: "rule-2"},
			Theme:         render.ThemeLight,
		})
		var validationErr domain.ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		doc := blocks.NewDocument(
			blocks.Block{ID: "h", Type: blocks.BlockTypeHeader, Content: "Nuevo riesgo"},
			blocks.Block{ID: "b", Type: blocks.BlockTypeButton, Content: "Ver riesgo"},
		)
		values := sampleValues()

		result, err := f.svc.CompileEmail(context.Background(), domain.CompileEmailRequest{
			PreviewSource: domain.PreviewSource{EmailBlocks: &doc, Context: &values},
			Theme:         render.ThemeLight,
		})
		require.NoError(t, err)
		require.True(t, result.Success)
		require.NotNil(t, result.HTML)
		assert.Contains(t, *result.MJML, "<mj-button")
		assert.Contains(t, *result.PlainText, "Nuevo riesgo")
	})

	t.Run("CachedByMarkup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := setupPreviewServiceTest(t, ctrl, true)

		compiled := cache.New[*render.CompileEmailResult](time.Minute, 8, 0)
		defer compiled.Stop()
		f.svc.SetCompileCache(compiled)

		doc := blocks.NewDocument(blocks.Block{ID: "h", Type: blocks.BlockTypeHeader, Content: "Nuevo riesgo"})
		values := sampleValues()
		req := domain.CompileEmailRequest{
			PreviewSource: domain.PreviewSource{EmailBlocks: &doc, Context: &values},
			Theme:         render.ThemeDark,
		}

		first, err := f.svc.CompileEmail(context.Background(), req)
		require.NoError(t, err)
		second, err := f.svc.CompileEmail(context.Background(), req)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, compiled.Len())

		req.Theme = render.ThemeLight
		third, err := f.svc.CompileEmail(context.Background(), req)
		require.NoError(t, err)
		assert.NotSame(t, first, third)
		assert.Equal(t, 2, compiled.Len())
	})
}

func TestPreviewService_Catalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := setupPreviewServiceTest(t, ctrl, true)

	catalog := f.svc.Catalog(context.Background())
	assert.Equal(t, variables.CatalogVersion, catalog.Version)
	assert.Equal(t, variables.Catalog(), catalog.Entries)
}
