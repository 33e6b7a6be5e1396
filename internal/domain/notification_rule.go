package domain

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/render"
)

//go:generate mockgen -destination mocks/mock_notification_rule_repository.go -package mocks github.com/grcflow/notifcomposer/internal/domain NotificationRuleRepository
//go:generate mockgen -destination mocks/mock_notification_rule_service.go -package mocks github.com/grcflow/notifcomposer/internal/domain NotificationRuleService

// Severity is the importance of the events a rule reacts to
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// NotificationRule tells the platform whom to notify, through which channels
// and with which message when an event happens on an entity type.
type NotificationRule struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	EntityType  string           `json:"entityType"`
	EventType   string           `json:"eventType"`
	Recipients  []string         `json:"recipients"`
	Channels    []render.Channel `json:"channels"`
	Severity    Severity         `json:"severity"`
	EmailBlocks blocks.Document  `json:"emailBlocks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// HasChannel reports whether the rule delivers through ch
func (r *NotificationRule) HasChannel(ch render.Channel) bool {
	for _, c := range r.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// Role recipients are written as "role:<slug>"
var (
	roleRecipientRegex = regexp.MustCompile(`^role:[a-z][a-z0-9_-]{0,63}$`)
	typeSlugRegex      = `^[a-z][a-z0-9_.-]{0,63}$`
)

// ruleFields are the user editable fields shared by create and update
type ruleFields struct {
	Name        string
	EntityType  string
	EventType   string
	Recipients  []string
	Channels    []render.Channel
	Severity    Severity
	EmailBlocks blocks.Document
}

func (f ruleFields) validate(op string) error {
	if f.Name == "" {
		return fmt.Errorf("invalid %s notification rule request: name is required", op)
	}
	if len(f.Name) > 255 {
		return fmt.Errorf("invalid %s notification rule request: name length must be between 1 and 255", op)
	}

	if f.EntityType == "" {
		return fmt.Errorf("invalid %s notification rule request: entityType is required", op)
	}
	if !govalidator.Matches(f.EntityType, typeSlugRegex) {
		return fmt.Errorf("invalid %s notification rule request: entityType must be a lowercase slug", op)
	}
	if f.EventType == "" {
		return fmt.Errorf("invalid %s notification rule request: eventType is required", op)
	}
	if !govalidator.Matches(f.EventType, typeSlugRegex) {
		return fmt.Errorf("invalid %s notification rule request: eventType must be a lowercase slug", op)
	}

	if len(f.Recipients) == 0 {
		return fmt.Errorf("invalid %s notification rule request: at least one recipient is required", op)
	}
	for _, rcpt := range f.Recipients {
		if !govalidator.IsEmail(rcpt) && !roleRecipientRegex.MatchString(rcpt) {
			return fmt.Errorf("invalid %s notification rule request: recipient %q must be an email or role:<slug>", op, rcpt)
		}
	}

	if len(f.Channels) == 0 {
		return fmt.Errorf("invalid %s notification rule request: at least one channel is required", op)
	}
	seen := make(map[render.Channel]bool, len(f.Channels))
	for _, ch := range f.Channels {
		if !ch.IsValid() {
			return fmt.Errorf("invalid %s notification rule request: unsupported channel %q", op, ch)
		}
		if seen[ch] {
			return fmt.Errorf("invalid %s notification rule request: duplicate channel %q", op, ch)
		}
		seen[ch] = true
	}

	if !f.Severity.IsValid() {
		return fmt.Errorf("invalid %s notification rule request: severity must be one of low, medium, high, critical", op)
	}

	if seen[render.ChannelEmail] && f.EmailBlocks.IsEmpty() {
		return fmt.Errorf("invalid %s notification rule request: emailBlocks must not be empty when the email channel is enabled", op)
	}
	return nil
}

// CreateNotificationRuleRequest defines the request structure for creating a notification rule
type CreateNotificationRuleRequest struct {
	Name        string           `json:"name"`
	EntityType  string           `json:"entityType"`
	EventType   string           `json:"eventType"`
	Recipients  []string         `json:"recipients"`
	Channels    []render.Channel `json:"channels"`
	Severity    Severity         `json:"severity"`
	EmailBlocks blocks.Document  `json:"emailBlocks"`
}

// Validate validates the request and builds the rule to store
func (r *CreateNotificationRuleRequest) Validate() (*NotificationRule, error) {
	fields := ruleFields{
		Name:        strings.TrimSpace(r.Name),
		EntityType:  r.EntityType,
		EventType:   r.EventType,
		Recipients:  r.Recipients,
		Channels:    r.Channels,
		Severity:    r.Severity,
		EmailBlocks: r.EmailBlocks,
	}
	if err := fields.validate("create"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &NotificationRule{
		ID:          uuid.New().String(),
		Name:        fields.Name,
		EntityType:  r.EntityType,
		EventType:   r.EventType,
		Recipients:  r.Recipients,
		Channels:    r.Channels,
		Severity:    r.Severity,
		EmailBlocks: r.EmailBlocks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateNotificationRuleRequest defines the request structure for updating a notification rule
type UpdateNotificationRuleRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	EntityType  string           `json:"entityType"`
	EventType   string           `json:"eventType"`
	Recipients  []string         `json:"recipients"`
	Channels    []render.Channel `json:"channels"`
	Severity    Severity         `json:"severity"`
	EmailBlocks blocks.Document  `json:"emailBlocks"`
}

// Validate validates the update request. CreatedAt is left for the service
// to carry over from the stored rule.
func (r *UpdateNotificationRuleRequest) Validate() (*NotificationRule, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("invalid update notification rule request: id is required")
	}
	fields := ruleFields{
		Name:        strings.TrimSpace(r.Name),
		EntityType:  r.EntityType,
		EventType:   r.EventType,
		Recipients:  r.Recipients,
		Channels:    r.Channels,
		Severity:    r.Severity,
		EmailBlocks: r.EmailBlocks,
	}
	if err := fields.validate("update"); err != nil {
		return nil, err
	}

	return &NotificationRule{
		ID:          r.ID,
		Name:        fields.Name,
		EntityType:  r.EntityType,
		EventType:   r.EventType,
		Recipients:  r.Recipients,
		Channels:    r.Channels,
		Severity:    r.Severity,
		EmailBlocks: r.EmailBlocks,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

// DeleteNotificationRuleRequest defines the request structure for deleting a notification rule
type DeleteNotificationRuleRequest struct {
	ID string `json:"id"`
}

func (r *DeleteNotificationRuleRequest) Validate() (string, error) {
	if r.ID == "" {
		return "", fmt.Errorf("invalid delete notification rule request: id is required")
	}
	return r.ID, nil
}

// GetNotificationRuleRequest defines the request structure for getting a notification rule
type GetNotificationRuleRequest struct {
	ID string `json:"id"`
}

// FromURLParams parses the request from URL query parameters
func (r *GetNotificationRuleRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	if r.ID == "" {
		return fmt.Errorf("invalid get notification rule request: id is required")
	}
	return nil
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListNotificationRulesRequest defines the request structure for listing notification rules
type ListNotificationRulesRequest struct {
	EntityType string `json:"entityType,omitempty"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// FromURLParams parses the request from URL query parameters
func (r *ListNotificationRulesRequest) FromURLParams(queryParams url.Values) error {
	r.EntityType = queryParams.Get("entity_type")
	r.Limit = DefaultListLimit
	r.Offset = 0

	if r.EntityType != "" && !govalidator.Matches(r.EntityType, typeSlugRegex) {
		return fmt.Errorf("invalid list notification rules request: entity_type must be a lowercase slug")
	}

	if v := queryParams.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MaxListLimit {
			return fmt.Errorf("invalid list notification rules request: limit must be between 1 and %d", MaxListLimit)
		}
		r.Limit = limit
	}
	if v := queryParams.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return fmt.Errorf("invalid list notification rules request: offset must be a non-negative integer")
		}
		r.Offset = offset
	}
	return nil
}

// ListNotificationRulesResponse is a page of rules plus the unpaged total
type ListNotificationRulesResponse struct {
	Rules      []*NotificationRule `json:"rules"`
	TotalCount int                 `json:"totalCount"`
}

// NotificationRuleRepository persists notification rules
type NotificationRuleRepository interface {
	Create(ctx context.Context, rule *NotificationRule) error
	Get(ctx context.Context, id string) (*NotificationRule, error)
	List(ctx context.Context, params ListNotificationRulesRequest) ([]*NotificationRule, int, error)
	Update(ctx context.Context, rule *NotificationRule) error
	Delete(ctx context.Context, id string) error
}

// NotificationRuleService provides operations for managing notification rules
type NotificationRuleService interface {
	CreateRule(ctx context.Context, rule *NotificationRule) error
	GetRule(ctx context.Context, id string) (*NotificationRule, error)
	ListRules(ctx context.Context, params ListNotificationRulesRequest) (*ListNotificationRulesResponse, error)
	UpdateRule(ctx context.Context, rule *NotificationRule) error
	DeleteRule(ctx context.Context, id string) error
}
