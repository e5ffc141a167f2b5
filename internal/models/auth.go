package models

import (
	"time"

	"github.com/google/uuid"
)

// Account links a user to an external OAuth provider. Rows are written by
// the auth collaborator; this service only migrates the table.
type Account struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Type              string    `gorm:"size:50;not null" json:"type"`
	Provider          string    `gorm:"size:100;not null;uniqueIndex:idx_accounts_provider_account" json:"provider"`
	ProviderAccountID string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_provider_account" json:"providerAccountId"`
	RefreshToken      *string   `json:"-"`
	AccessToken       *string   `json:"-"`
	ExpiresAt         *int64    `json:"-"`
	TokenType         *string   `json:"-"`
	Scope             *string   `json:"-"`
	IDToken           *string   `json:"-"`
	SessionState      *string   `json:"-"`
}

// Session is a revocable login session. Only the SHA-256 hash of the token
// is stored.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Expires   time.Time `gorm:"not null" json:"expires"`
	CreatedAt time.Time `json:"createdAt"`
}

// VerificationToken backs email verification flows of the auth collaborator.
type VerificationToken struct {
	Identifier string    `gorm:"size:255;primaryKey" json:"identifier"`
	Token      string    `gorm:"size:255;primaryKey" json:"-"`
	Expires    time.Time `gorm:"not null" json:"expires"`
}
