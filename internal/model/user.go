package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role distinguishes administrators from ordinary members.
type Role string

const (
	RoleMember Role = "USER"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole maps a stored role label to a Role, ignoring case.
// Anything that is not "admin" is a member.
func ParseRole(label string) Role {
	if strings.EqualFold(strings.TrimSpace(label), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleMember
}

// Scan implements sql.Scanner.
func (r *Role) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = RoleMember
	case string:
		*r = ParseRole(v)
	case []byte:
		*r = ParseRole(string(v))
	default:
		return fmt.Errorf("unsupported role type %T", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if r == "" {
		return string(RoleMember), nil
	}
	return string(r), nil
}

// User is a member account. Accounts are managed by the identity subsystem;
// the board only reads them.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"column:user_id;size:100;uniqueIndex;not null"` // token subject
	Nickname string `json:"nickname" gorm:"size:100"`
	Role     Role   `json:"role" gorm:"type:varchar(20);default:'USER'"`
}

// TableName keeps the table shared with the identity subsystem.
func (User) TableName() string {
	return "user"
}
