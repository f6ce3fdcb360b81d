package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusInactive            UserStatus = "INACTIVE"
	UserStatusSuspended           UserStatus = "SUSPENDED"
	UserStatusBlocked             UserStatus = "BLOCKED"
	UserStatusBanned              UserStatus = "BANNED"
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
)

// STAFF以上か（チケット管理はSTAFFも可）
func (r Role) IsStaffOrAdmin() bool {
	return r == RoleStaff || r == RoleAdmin
}

// このステータスでAPIを使えるか
func (s UserStatus) CanAccess() bool {
	return s == UserStatusActive
}

type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Name         string     `gorm:"type:varchar(255)"`
	Phone        string     `gorm:"type:varchar(30)"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'"`
	Status       UserStatus `gorm:"type:varchar(30);not null;default:'ACTIVE';index"`
	TokenVersion int        `gorm:"not null;default:0"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
