package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcflow/notifcomposer/internal/domain"
	domainmocks "github.com/grcflow/notifcomposer/internal/domain/mocks"
	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	pkgmocks "github.com/grcflow/notifcomposer/pkg/mocks"
	"github.com/grcflow/notifcomposer/pkg/render"
)

func createTestRule(id string) *domain.NotificationRule {
	return &domain.NotificationRule{
		ID:         id,
		Name:       "Riesgos críticos",
		EntityType: "riesgo",
		EventType:  "created",
		Recipients: []string{"role:risk_manager"},
		Channels:   []render.Channel{render.ChannelEmail},
		Severity:   domain.SeverityCritical,
		EmailBlocks: blocks.NewDocument(
			blocks.Block{ID: "h", Type: blocks.BlockTypeHeader, Content: "Nuevo riesgo: {{ nombre }}"},
			blocks.Block{ID: "v", Type: blocks.BlockTypeVariable, Content: "severidad"},
		),
	}
}

func newMockLogger(ctrl *gomock.Controller) *pkgmocks.MockLogger {
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return mockLogger
}

func setupNotificationRuleServiceTest(ctrl *gomock.Controller) (*service.NotificationRuleService, *domainmocks.MockNotificationRuleRepository) {
	mockRepo := domainmocks.NewMockNotificationRuleRepository(ctrl)
	return service.NewNotificationRuleService(mockRepo, newMockLogger(ctrl)), mockRepo
}

func TestNotificationRuleService_CreateRule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

		rule := createTestRule("rule-1")
		mockRepo.EXPECT().Create(gomock.Any(), rule).Return(nil)

		require.NoError(t, svc.CreateRule(ctx, rule))
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := svc.CreateRule(ctx, createTestRule("rule-1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create notification rule")
	})
}

func TestNotificationRuleService_GetRule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

		expected := createTestRule("rule-1")
		mockRepo.EXPECT().Get(gomock.Any(), "rule-1").Return(expected, nil)

		rule, err := svc.GetRule(ctx, "rule-1")
		require.NoError(t, err)
		assert.Equal(t, expected, rule)
	})

	t.Run("NotFoundIsPassedThrough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

		notFound := &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
		mockRepo.EXPECT().Get(gomock.Any(), "missing").Return(nil, notFound)

		_, err := svc.GetRule(ctx, "missing")
		assert.Equal(t, notFound, err)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), "rule-1").Return(nil, errors.New("timeout"))

		_, err := svc.GetRule(ctx, "rule-1")
		assert.ErrorContains(t, err, "failed to get notification rule")
	})
}

func TestNotificationRuleService_ListRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

	params := domain.ListNotificationRulesRequest{EntityType: "riesgo", Limit: 10}
	mockRepo.EXPECT().List(gomock.Any(), params).Return([]*domain.NotificationRule{createTestRule("a"), createTestRule("b")}, 12, nil)

	resp, err := svc.ListRules(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, resp.Rules, 2)
	assert.Equal(t, 12, resp.TotalCount)

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("boom"))
	_, err = svc.ListRules(context.Background(), domain.ListNotificationRulesRequest{})
	assert.ErrorContains(t, err, "failed to list notification rules")
}

func TestNotificationRuleService_UpdateRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

	rule := createTestRule("rule-1")
	mockRepo.EXPECT().Update(gomock.Any(), rule).Return(nil)
	require.NoError(t, svc.UpdateRule(context.Background(), rule))

	notFound := &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
	mockRepo.EXPECT().Update(gomock.Any(), rule).Return(notFound)
	var target *domain.ErrNotificationRuleNotFound
	assert.True(t, errors.As(svc.UpdateRule(context.Background(), rule), &target))

	mockRepo.EXPECT().Update(gomock.Any(), rule).Return(errors.New("boom"))
	assert.ErrorContains(t, svc.UpdateRule(context.Background(), rule), "failed to update notification rule")
}

func TestNotificationRuleService_DeleteRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, mockRepo := setupNotificationRuleServiceTest(ctrl)

	mockRepo.EXPECT().Delete(gomock.Any(), "rule-1").Return(nil)
	require.NoError(t, svc.DeleteRule(context.Background(), "rule-1"))

	notFound := &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
	mockRepo.EXPECT().Delete(gomock.Any(), "missing").Return(notFound)
	assert.Equal(t, notFound, svc.DeleteRule(context.Background(), "missing"))

	mockRepo.EXPECT().Delete(gomock.Any(), "rule-1").Return(errors.New("boom"))
	assert.ErrorContains(t, svc.DeleteRule(context.Background(), "rule-1"), "failed to delete notification rule")
}
