package database

// Direction tells whether a logged message was received or sent by the bot.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Entry is a single observed message to be appended to the audit log.
// Nil pointers are stored as NULL.
type Entry struct {
	Direction Direction
	ChatID    *int64
	UserID    *int64
	MessageID *int64
	Text      *string
	Raw       any // JSON-encoded verbatim into raw_json
}

// LoggedMessage is a row of the messages table.
type LoggedMessage struct {
	ID        int64     `db:"id"`
	Direction Direction `db:"direction"`
	ChatID    *int64    `db:"chat_id"`
	UserID    *int64    `db:"user_id"`
	MessageID *int64    `db:"message_id"`
	Text      *string   `db:"text"`
	RawJSON   string    `db:"raw_json"`
	CreatedAt string    `db:"created_at"` // SQLite datetime('now'), UTC
}

// Int64 returns a pointer to v, for filling optional Entry fields.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v, for filling optional Entry fields.
func String(v string) *string { return &v }
