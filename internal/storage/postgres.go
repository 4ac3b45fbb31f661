package storage

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/xaenox/rubot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresBackend keeps each user's history as ordered rows in a single
// table. Saving replaces the user's rows in one transaction so a record is
// never half-overwritten.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(config DatabaseConfig) (*PostgresBackend, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	backend := &PostgresBackend{db: db}
	if err := backend.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	return backend, nil
}

func (b *PostgresBackend) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := b.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}
	return nil
}

func (b *PostgresBackend) SaveHistory(user string, messages []models.Message) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chat_history WHERE username = $1`, user); err != nil {
		return fmt.Errorf("error clearing previous history: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chat_history (username, position, author, body, stamp, is_user)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range messages {
		if _, err := stmt.Exec(user, i, msg.Author, msg.Text, msg.Time, msg.IsUser); err != nil {
			return fmt.Errorf("error inserting history message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing history: %w", err)
	}
	return nil
}

func (b *PostgresBackend) LoadHistory(user string) ([]models.Message, error) {
	rows, err := b.db.Query(`
		SELECT author, body, stamp, is_user
		FROM chat_history
		WHERE username = $1
		ORDER BY position`, user)
	if err != nil {
		return nil, fmt.Errorf("error querying history: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Author, &msg.Text, &msg.Time, &msg.IsUser); err != nil {
			return nil, fmt.Errorf("error scanning history message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading history rows: %w", err)
	}
	if messages == nil {
		return nil, fmt.Errorf("no history record for %q", user)
	}
	return messages, nil
}

func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
