package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// StringList stores a []string as a JSON text column so the same model
// works on both postgres and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.Errorf("unsupported type %T for StringList", value)
	}
}

type Recipe struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"not null;index"`
	Ingredients   StringList `json:"ingredients" gorm:"type:text;not null"`
	Instructions  string     `json:"instructions" gorm:"not null"`
	Category      string     `json:"category" gorm:"not null;index"`
	CreatedByID   uint       `json:"-" gorm:"index;not null"`
	CreatedBy     *User      `json:"createdBy,omitempty"`
	Reviews       []Review   `json:"reviews" gorm:"foreignKey:RecipeID"`
	AverageRating float64    `json:"averageRating" gorm:"default:0"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
