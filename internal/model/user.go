package model

import "time"

type AppRole string

const (
	RoleAdmin     AppRole = "admin"
	RoleModerator AppRole = "moderator"
	RoleUser      AppRole = "user"
)

func (r AppRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

type Profile struct {
	ID        string    `gorm:"primaryKey;size:36;not null" json:"id"` // auth user id
	Email     string    `gorm:"size:255;not null" json:"email"`
	FullName  *string   `gorm:"size:255" json:"full_name"`
	Phone     *string   `gorm:"size:32" json:"phone"`
	AvatarURL *string   `gorm:"size:1024" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRole struct {
	ID        string  `gorm:"primaryKey;size:36;not null"`
	UserID    string  `gorm:"size:36;uniqueIndex:idx_user_role;not null"`
	Role      AppRole `gorm:"size:16;uniqueIndex:idx_user_role;not null"`
	CreatedAt time.Time
}

type Favorite struct {
	ID         string    `gorm:"primaryKey;size:36;not null" json:"id"`
	UserID     string    `gorm:"size:36;uniqueIndex:idx_user_business;not null" json:"user_id"`
	BusinessID string    `gorm:"size:36;uniqueIndex:idx_user_business;not null" json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
}
