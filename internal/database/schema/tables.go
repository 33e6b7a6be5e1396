// Package schema defines the database schema of the composer service.
//
// The statements are idempotent and run on every startup.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS notification_rules (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		entity_type VARCHAR(64) NOT NULL,
		event_type VARCHAR(64) NOT NULL,
		recipients TEXT[] NOT NULL DEFAULT '{}',
		channels TEXT[] NOT NULL DEFAULT '{}',
		severity VARCHAR(20) NOT NULL,
		email_blocks JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notification_rules_entity_type ON notification_rules (entity_type)`,
	`CREATE INDEX IF NOT EXISTS idx_notification_rules_created_at ON notification_rules (created_at DESC)`,
}
