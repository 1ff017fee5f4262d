package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated principal vouched for by an external identity
// provider. Provider and ProviderID identify the external subject and are
// used to deduplicate repeated logins; Email is the fallback match so a
// returning user never gets a duplicate account.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Provider   string    `gorm:"size:50" json:"provider"`
	ProviderID string    `gorm:"size:255" json:"providerId"`
	CreatedAt  time.Time `json:"createdAt"`
}
