package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"` // stored lowercased
	Password     string    `json:"-"`                                 // bcrypt hash
	Role         string    `json:"role" gorm:"default:USER"`
	Recipes      []Recipe  `json:"recipes,omitempty" gorm:"foreignKey:CreatedByID"`
	SavedRecipes []*Recipe `json:"savedRecipes,omitempty" gorm:"many2many:saved_recipes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
