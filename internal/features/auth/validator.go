package auth

import (
	"errors"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks the account display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > 50 {
		return errors.New("name cannot exceed 50 characters")
	}
	return nil
}

// ValidateEmail checks the email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword checks the password length
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// ValidateTheme checks the preference theme value
func ValidateTheme(theme string) error {
	switch theme {
	case "light", "dark", "system":
		return nil
	}
	return errors.New("theme must be one of: light, dark, system")
}

// ValidateRegister validates all fields in RegisterRequest
func ValidateRegister(req *RegisterRequest) error {
	if err := ValidateName(req.Name); err != nil {
		return err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	return ValidatePassword(req.Password)
}

// ValidateLogin validates all fields in LoginRequest
func ValidateLogin(req *LoginRequest) error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ValidateUpdateProfile validates the non-nil fields of UpdateProfileRequest
func ValidateUpdateProfile(req *UpdateProfileRequest) error {
	if req.Name != "" {
		if err := ValidateName(req.Name); err != nil {
			return err
		}
	}
	if req.Preferences != nil {
		if err := ValidateTheme(req.Preferences.Theme); err != nil {
			return err
		}
	}
	return nil
}
