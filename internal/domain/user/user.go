package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// User is a staff member who creates or works tickets.
type User struct {
	ID        uint           `json:"id"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	Role      Role           `json:"role"`
	StartTime datatypes.Time `json:"start_time"`
	EndTime   datatypes.Time `json:"end_time"`
	Credit    int            `json:"credit"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

func (u *User) Label() string {
	return "User " + u.FullName
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lowercases an address and checks its shape.
func NormalizeEmail(value string) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if normalized == "" {
		return "", fmt.Errorf("email cannot be empty")
	}
	if len(normalized) > 255 {
		return "", fmt.Errorf("email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid email format: %s", value)
	}
	return normalized, nil
}
