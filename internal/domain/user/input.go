package user

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"hotelops/internal/shared/optional"
)

const DefaultCredit = 100

// CreateInput is the payload for prepare and confirm create. Shift times are
// strings on the wire and canonicalized to HH:MM:SS by Normalize.
type CreateInput struct {
	FullName  string `json:"full_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required"`
	Role      string `json:"role" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Credit    *int   `json:"credit" validate:"omitempty,gte=0"`
}

func (in *CreateInput) Normalize() error {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return fmt.Errorf("full_name cannot be empty")
	}
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return err
	}
	in.Email = email

	role, err := ParseRole(in.Role)
	if err != nil {
		return err
	}
	in.Role = string(role)

	start, err := ParseShiftTime(in.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseShiftTime(in.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	in.StartTime, in.EndTime = start.String(), end.String()

	if in.Credit == nil {
		c := DefaultCredit
		in.Credit = &c
	}
	return nil
}

// ToUser builds an unsaved user. Normalize must have been called.
func (in *CreateInput) ToUser() *User {
	start, _ := ParseShiftTime(in.StartTime)
	end, _ := ParseShiftTime(in.EndTime)
	u := &User{
		FullName:  in.FullName,
		Email:     in.Email,
		Role:      Role(in.Role),
		StartTime: start,
		EndTime:   end,
		Credit:    DefaultCredit,
	}
	if in.Credit != nil {
		u.Credit = *in.Credit
	}
	return u
}

// UpdateInput is a partial user update. No user column accepts null.
type UpdateInput struct {
	FullName  optional.Value[string] `json:"full_name"`
	Email     optional.Value[string] `json:"email"`
	Role      optional.Value[string] `json:"role"`
	StartTime optional.Value[string] `json:"start_time"`
	EndTime   optional.Value[string] `json:"end_time"`
	Credit    optional.Value[int]    `json:"credit"`
}

func (in *UpdateInput) Normalize() error {
	for _, f := range []struct {
		name string
		null bool
	}{
		{"full_name", in.FullName.IsNull()},
		{"email", in.Email.IsNull()},
		{"role", in.Role.IsNull()},
		{"start_time", in.StartTime.IsNull()},
		{"end_time", in.EndTime.IsNull()},
		{"credit", in.Credit.IsNull()},
	} {
		if f.null {
			return fmt.Errorf("%s cannot be null", f.name)
		}
	}

	if v, ok := in.FullName.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return fmt.Errorf("full_name cannot be empty")
		}
		in.FullName = optional.Of(v)
	}
	if v, ok := in.Email.Get(); ok {
		email, err := NormalizeEmail(v)
		if err != nil {
			return err
		}
		in.Email = optional.Of(email)
	}
	if v, ok := in.Role.Get(); ok {
		role, err := ParseRole(v)
		if err != nil {
			return err
		}
		in.Role = optional.Of(string(role))
	}
	if v, ok := in.StartTime.Get(); ok {
		t, err := ParseShiftTime(v)
		if err != nil {
			return fmt.Errorf("start_time: %w", err)
		}
		in.StartTime = optional.Of(t.String())
	}
	if v, ok := in.EndTime.Get(); ok {
		t, err := ParseShiftTime(v)
		if err != nil {
			return fmt.Errorf("end_time: %w", err)
		}
		in.EndTime = optional.Of(t.String())
	}
	if v, ok := in.Credit.Get(); ok && v < 0 {
		return fmt.Errorf("credit must be at least 0")
	}
	return nil
}

func (in *UpdateInput) Payload() map[string]any {
	out := make(map[string]any)
	set := func(name string, f interface {
		IsSet() bool
		Any() any
	}) {
		if f.IsSet() {
			out[name] = f.Any()
		}
	}
	set("full_name", in.FullName)
	set("email", in.Email)
	set("role", in.Role)
	set("start_time", in.StartTime)
	set("end_time", in.EndTime)
	set("credit", in.Credit)
	return out
}

func (in *UpdateInput) IsEmpty() bool {
	return len(in.Payload()) == 0
}

// NewEmail returns the email being set, if any.
func (in *UpdateInput) NewEmail() (string, bool) {
	return in.Email.Get()
}

func (in *UpdateInput) Apply(u *User) {
	if v, ok := in.FullName.Get(); ok {
		u.FullName = v
	}
	if v, ok := in.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := in.Role.Get(); ok {
		u.Role = Role(v)
	}
	if v, ok := in.StartTime.Get(); ok {
		u.StartTime = mustShift(v)
	}
	if v, ok := in.EndTime.Get(); ok {
		u.EndTime = mustShift(v)
	}
	if v, ok := in.Credit.Get(); ok {
		u.Credit = v
	}
}

func mustShift(s string) datatypes.Time {
	t, _ := ParseShiftTime(s)
	return t
}
