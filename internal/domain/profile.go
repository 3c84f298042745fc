package domain

import "time"

// User represents a registered user.
type User struct {
	ID        string    `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Profile holds the per-guild economy state for one user.
// Coins never go negative and XP never decreases; Level is derived
// from XP and stored only so leaderboard queries can sort on it.
type Profile struct {
	UserID           string     `json:"user_id" db:"user_id"`
	GuildID          string     `json:"guild_id" db:"guild_id"`
	Coins            int        `json:"coins" db:"coins"`
	XP               int64      `json:"xp" db:"xp"`
	Level            int        `json:"level" db:"level"`
	CasesOpenedToday int        `json:"cases_opened_today" db:"cases_opened_today"`
	LastOpenDay      *time.Time `json:"last_open_day,omitempty" db:"last_open_day"`
	LastDailyAt      *time.Time `json:"last_daily_at,omitempty" db:"last_daily_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// TokenKind distinguishes the two consumable token families.
type TokenKind string

const (
	TokenKindCase TokenKind = "case"
	TokenKindKey  TokenKind = "key"
)

// TokenStack is the count of one token type held by a user in a guild.
type TokenStack struct {
	Kind     TokenKind `json:"kind"`
	DefID    int       `json:"def_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}
