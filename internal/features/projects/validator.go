package projects

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var validRoles = map[string]bool{
	RoleViewer: true,
	RoleEditor: true,
	RoleAdmin:  true,
}

// ValidateName ensures name is non-empty after trimming and within limits
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmed) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateColor ensures color is a hex code like #4F46E5
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("color must be a hex code like #4F46E5")
	}
	return nil
}

// ValidateRole ensures role is one of the collaborator roles
func ValidateRole(role string) error {
	if !validRoles[role] {
		return fmt.Errorf("role must be one of: viewer, editor, admin")
	}
	return nil
}

// ValidateCreate validates a project creation request
func ValidateCreate(req *CreateProjectRequest) error {
	if err := ValidateName(req.Name); err != nil {
		return err
	}
	if len(req.Description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if req.Color != "" {
		if err := ValidateColor(req.Color); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdate validates a partial project update request
func ValidateUpdate(req *UpdateProjectRequest) error {
	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if req.Color != nil {
		if err := ValidateColor(*req.Color); err != nil {
			return err
		}
	}
	return nil
}
