package service

import (
	"context"
	"fmt"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/tracing"
)

type NotificationRuleService struct {
	repo   domain.NotificationRuleRepository
	logger logger.Logger
}

func NewNotificationRuleService(repo domain.NotificationRuleRepository, logger logger.Logger) *NotificationRuleService {
	return &NotificationRuleService{
		repo:   repo,
		logger: logger,
	}
}

func (s *NotificationRuleService) CreateRule(ctx context.Context, rule *domain.NotificationRule) error {
	ctx, span := tracing.StartServiceSpan(ctx, "NotificationRuleService", "CreateRule")
	defer span.End()
	tracing.AddAttribute(ctx, "rule_id", rule.ID)
	tracing.AddAttribute(ctx, "entity_type", rule.EntityType)

	if err := s.repo.Create(ctx, rule); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("rule_id", rule.ID).WithField("error", err.Error()).Error("Failed to create notification rule")
		return fmt.Errorf("failed to create notification rule: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id":     rule.ID,
		"entity_type": rule.EntityType,
		"blocks":      rule.EmailBlocks.Len(),
	}).Info("Notification rule created")
	return nil
}

func (s *NotificationRuleService) GetRule(ctx context.Context, id string) (*domain.NotificationRule, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NotificationRuleService", "GetRule")
	defer span.End()
	tracing.AddAttribute(ctx, "rule_id", id)

	rule, err := s.repo.Get(ctx, id)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			return nil, err
		}
		s.logger.WithField("rule_id", id).WithField("error", err.Error()).Error("Failed to get notification rule")
		return nil, fmt.Errorf("failed to get notification rule: %w", err)
	}
	return rule, nil
}

func (s *NotificationRuleService) ListRules(ctx context.Context, params domain.ListNotificationRulesRequest) (*domain.ListNotificationRulesResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "NotificationRuleService", "ListRules")
	defer span.End()
	tracing.AddAttribute(ctx, "entity_type", params.EntityType)

	rules, total, err := s.repo.List(ctx, params)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("error", err.Error()).Error("Failed to list notification rules")
		return nil, fmt.Errorf("failed to list notification rules: %w", err)
	}

	return &domain.ListNotificationRulesResponse{
		Rules:      rules,
		TotalCount: total,
	}, nil
}

func (s *NotificationRuleService) UpdateRule(ctx context.Context, rule *domain.NotificationRule) error {
	ctx, span := tracing.StartServiceSpan(ctx, "NotificationRuleService", "UpdateRule")
	defer span.End()
	tracing.AddAttribute(ctx, "rule_id", rule.ID)

	if err := s.repo.Update(ctx, rule); err != nil {
		tracing.MarkSpanError(ctx, err)
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			return err
		}
		s.logger.WithField("rule_id", rule.ID).WithField("error", err.Error()).Error("Failed to update notification rule")
		return fmt.Errorf("failed to update notification rule: %w", err)
	}
	return nil
}

func (s *NotificationRuleService) DeleteRule(ctx context.Context, id string) error {
	ctx, span := tracing.StartServiceSpan(ctx, "NotificationRuleService", "DeleteRule")
	defer span.End()
	tracing.AddAttribute(ctx, "rule_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		tracing.MarkSpanError(ctx, err)
		if _, ok := err.(*domain.ErrNotificationRuleNotFound); ok {
			return err
		}
		s.logger.WithField("rule_id", id).WithField("error", err.Error()).Error("Failed to delete notification rule")
		return fmt.Errorf("failed to delete notification rule: %w", err)
	}
	return nil
}
