package utils

import "os"

// GetEnvVariable reads an environment variable with a fallback
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
