package utils

import "github.com/google/uuid"

// GenerateUUID generates a new run identifier
func GenerateUUID() string {
	return uuid.New().String()
}
