package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// NotificationRuleColumns mirrors the column order of notification_rules selects
var NotificationRuleColumns = []string{
	"id", "name", "entity_type", "event_type", "recipients",
	"channels", "severity", "email_blocks", "created_at", "updated_at",
}

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// RuleRow is one stored notification rule as the driver returns it
type RuleRow struct {
	ID         string
	Name       string
	EntityType string
	EventType  string
	Recipients []string
	Channels   []string
	Severity   string
	Blocks     string
	At         time.Time
}

// NewRuleRows builds result rows for a notification_rules select
func NewRuleRows(rules ...RuleRow) *sqlmock.Rows {
	rows := sqlmock.NewRows(NotificationRuleColumns)
	for _, r := range rules {
		rows.AddRow(r.ID, r.Name, r.EntityType, r.EventType, PGArray(r.Recipients...),
			PGArray(r.Channels...), r.Severity, []byte(r.Blocks), r.At, r.At)
	}
	return rows
}

// PGArray renders values as a Postgres text[] literal, e.g. {a,b}.
// Values are not quoted.
func PGArray(values ...string) string {
	return "{" + strings.Join(values, ",") + "}"
}
