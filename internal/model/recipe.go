package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the fixed recipe difficulty enumeration. Values are
// case-sensitive on the wire.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// JSONStringArray stores an ordered string sequence as a JSON column.
type JSONStringArray []string

// Value implements the driver.Valuer interface
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is one recipe document. ID and CreatedAt are assigned by the
// repository at create time and never mutated afterwards. CreatedBy is a
// weak reference to the owning user; nil on rows written before
// authentication existed.
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Ingredients  JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	PrepTime     int             `gorm:"not null" json:"prepTime"`
	CookTime     int             `gorm:"not null" json:"cookTime"`
	Difficulty   Difficulty      `gorm:"size:10;not null;default:'Medium'" json:"difficulty"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid" json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OwnedBy reports whether the recipe has an owner matching userID.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.CreatedBy != nil && *r.CreatedBy == userID
}
