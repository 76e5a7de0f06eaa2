// Package store records clone-chat conversations in a local sqlite database
// so past chats can be reviewed with the history command.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    friend      TEXT NOT NULL,
    partner     TEXT NOT NULL DEFAULT '',
    source_file TEXT NOT NULL DEFAULT '',
    examples    INTEGER NOT NULL DEFAULT 0,
    started_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS turns (
    chat_id INTEGER NOT NULL,
    seq     INTEGER NOT NULL,
    role    TEXT NOT NULL,
    text    TEXT NOT NULL,
    ts      TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (chat_id, seq)
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

const schemaVersion = "1"

const timeFormat = "2006-01-02T15:04:05Z"

type DB struct {
	db *sql.DB
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db.Exec("INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type Chat struct {
	ID         int64
	Friend     string
	Partner    string
	SourceFile string
	Examples   int
	StartedAt  string
	Turns      int
}

type Turn struct {
	Seq  int
	Role string
	Text string
	Ts   string
}

// CreateChat registers a new conversation and returns its id.
func (d *DB) CreateChat(friend, partner, sourceFile string, examples int) (int64, error) {
	res, err := d.db.Exec(
		"INSERT INTO chats (friend, partner, source_file, examples, started_at) VALUES (?, ?, ?, ?, ?)",
		friend, partner, sourceFile, examples, time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("insert chat: %w", err)
	}
	return res.LastInsertId()
}

// AppendTurn records one message of a conversation, user or assistant.
func (d *DB) AppendTurn(chatID int64, role, text string) error {
	var next int
	err := d.db.QueryRow(
		"SELECT COALESCE(MAX(seq), -1) + 1 FROM turns WHERE chat_id = ?", chatID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("next seq: %w", err)
	}

	_, err = d.db.Exec(
		"INSERT INTO turns (chat_id, seq, role, text, ts) VALUES (?, ?, ?, ?, ?)",
		chatID, next, role, text, time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// ListChats returns all recorded conversations, newest first.
func (d *DB) ListChats() ([]Chat, error) {
	rows, err := d.db.Query(`
		SELECT c.id, c.friend, c.partner, c.source_file, c.examples, c.started_at,
		       (SELECT COUNT(*) FROM turns t WHERE t.chat_id = c.id)
		FROM chats c ORDER BY c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.Friend, &c.Partner, &c.SourceFile, &c.Examples, &c.StartedAt, &c.Turns); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// GetChat returns one conversation, or nil when the id is unknown.
func (d *DB) GetChat(id int64) (*Chat, error) {
	var c Chat
	err := d.db.QueryRow(
		"SELECT id, friend, partner, source_file, examples, started_at FROM chats WHERE id = ?", id,
	).Scan(&c.ID, &c.Friend, &c.Partner, &c.SourceFile, &c.Examples, &c.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetTurns returns a conversation's turns in order.
func (d *DB) GetTurns(chatID int64) ([]Turn, error) {
	rows, err := d.db.Query(
		"SELECT seq, role, text, ts FROM turns WHERE chat_id = ? ORDER BY seq", chatID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Seq, &t.Role, &t.Text, &t.Ts); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (d *DB) TurnCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM turns").Scan(&n)
	return n, err
}
