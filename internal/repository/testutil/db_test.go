package testutil

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMockDB(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	require.NotNil(t, db)
	require.NotNil(t, mock)

	mock.ExpectPing()
	assert.NoError(t, db.Ping())

	cleanup()
	assert.Error(t, db.Ping(), "ping after cleanup should fail")
}

func TestPGArray(t *testing.T) {
	assert.Equal(t, "{}", PGArray())
	assert.Equal(t, "{email,in-app}", PGArray("email", "in-app"))
}

func TestNewRuleRows(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	defer cleanup()

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT").WillReturnRows(NewRuleRows(RuleRow{
		ID: "rule-1", Name: "A", EntityType: "riesgo", EventType: "created",
		Recipients: []string{"role:owner"}, Channels: []string{"email"},
		Severity: "high", Blocks: `[]`, At: at,
	}))

	rows, err := db.Query("SELECT * FROM notification_rules")
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, NotificationRuleColumns, cols)

	require.True(t, rows.Next())
	values := make([]driver.Value, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	require.NoError(t, rows.Scan(dest...))
	assert.Equal(t, "{role:owner}", values[4])
	assert.Equal(t, "{email}", values[5])
	assert.False(t, rows.Next())
}
