package service

import (
	"strings"

	"event-planner/internal/models"
)

// required trims value and rejects it when empty.
func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &models.ValidationError{Field: field, Msg: "must not be empty"}
	}
	return value, nil
}
