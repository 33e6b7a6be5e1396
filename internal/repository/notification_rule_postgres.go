package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"go.opencensus.io/trace"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/tracing"
)

const repositorySpanName = "NotificationRuleRepository"

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var notificationRuleColumns = []string{
	"id",
	"name",
	"entity_type",
	"event_type",
	"recipients",
	"channels",
	"severity",
	"email_blocks",
	"created_at",
	"updated_at",
}

type notificationRuleRepository struct {
	db *sql.DB
}

// NewNotificationRuleRepository creates a new PostgreSQL notification rule repository
func NewNotificationRuleRepository(db *sql.DB) domain.NotificationRuleRepository {
	return &notificationRuleRepository{db: db}
}

func channelsToStrings(channels []render.Channel) []string {
	out := make([]string, len(channels))
	for i, c := range channels {
		out[i] = string(c)
	}
	return out
}

func (r *notificationRuleRepository) Create(ctx context.Context, rule *domain.NotificationRule) (err error) {
	ctx, span := tracing.StartSpanWithAttributes(ctx, repositorySpanName+".Create", trace.StringAttribute("rule_id", rule.ID))
	defer func() { tracing.EndSpan(span, err) }()

	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	query, args, err := psql.Insert("notification_rules").
		Columns(notificationRuleColumns...).
		Values(
			rule.ID,
			rule.Name,
			rule.EntityType,
			rule.EventType,
			pq.Array(rule.Recipients),
			pq.Array(channelsToStrings(rule.Channels)),
			string(rule.Severity),
			rule.EmailBlocks,
			rule.CreatedAt,
			rule.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create notification rule: %w", err)
	}
	return nil
}

func (r *notificationRuleRepository) Get(ctx context.Context, id string) (*domain.NotificationRule, error) {
	return tracing.TraceMethodWithResult(ctx, repositorySpanName, "Get", func(ctx context.Context) (*domain.NotificationRule, error) {
		return r.get(ctx, id)
	})
}

func (r *notificationRuleRepository) get(ctx context.Context, id string) (*domain.NotificationRule, error) {
	query, args, err := psql.Select(notificationRuleColumns...).
		From("notification_rules").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rule, err := scanNotificationRule(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification rule: %w", err)
	}
	return rule, nil
}

func (r *notificationRuleRepository) List(ctx context.Context, params domain.ListNotificationRulesRequest) ([]*domain.NotificationRule, int, error) {
	ctx, span := tracing.StartSpan(ctx, repositorySpanName+".List")
	span.AddAttributes(
		trace.StringAttribute("entity_type", params.EntityType),
		trace.Int64Attribute("limit", int64(params.Limit)),
		trace.Int64Attribute("offset", int64(params.Offset)),
	)
	rules, total, err := r.list(ctx, params)
	tracing.EndSpan(span, err)
	return rules, total, err
}

func (r *notificationRuleRepository) list(ctx context.Context, params domain.ListNotificationRulesRequest) ([]*domain.NotificationRule, int, error) {
	where := sq.And{}
	if params.EntityType != "" {
		where = append(where, sq.Eq{"entity_type": params.EntityType})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("notification_rules").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notification rules: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}

	query, args, err := psql.Select(notificationRuleColumns...).
		From("notification_rules").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(params.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notification rules: %w", err)
	}
	defer rows.Close()

	rules := []*domain.NotificationRule{}
	for rows.Next() {
		rule, err := scanNotificationRule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rules: %w", err)
	}

	return rules, total, nil
}

func (r *notificationRuleRepository) Update(ctx context.Context, rule *domain.NotificationRule) (err error) {
	ctx, span := tracing.StartSpanWithAttributes(ctx, repositorySpanName+".Update", trace.StringAttribute("rule_id", rule.ID))
	defer func() { tracing.EndSpan(span, err) }()

	rule.UpdatedAt = time.Now().UTC()

	query, args, err := psql.Update("notification_rules").
		Set("name", rule.Name).
		Set("entity_type", rule.EntityType).
		Set("event_type", rule.EventType).
		Set("recipients", pq.Array(rule.Recipients)).
		Set("channels", pq.Array(channelsToStrings(rule.Channels))).
		Set("severity", string(rule.Severity)).
		Set("email_blocks", rule.EmailBlocks).
		Set("updated_at", rule.UpdatedAt).
		Where(sq.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update notification rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
	}
	return nil
}

func (r *notificationRuleRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.StartSpanWithAttributes(ctx, repositorySpanName+".Delete", trace.StringAttribute("rule_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	query, args, err := psql.Delete("notification_rules").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete notification rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotificationRuleNotFound{Message: "notification rule not found"}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNotificationRule(s scanner) (*domain.NotificationRule, error) {
	var (
		rule       domain.NotificationRule
		recipients pq.StringArray
		channels   pq.StringArray
		severity   string
	)

	err := s.Scan(
		&rule.ID,
		&rule.Name,
		&rule.EntityType,
		&rule.EventType,
		&recipients,
		&channels,
		&severity,
		&rule.EmailBlocks,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Recipients = []string(recipients)
	rule.Channels = make([]render.Channel, len(channels))
	for i, c := range channels {
		rule.Channels[i] = render.Channel(c)
	}
	rule.Severity = domain.Severity(severity)
	return &rule, nil
}
