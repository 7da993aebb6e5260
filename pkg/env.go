package pkg

import "os"

// Getenv returns the value of key, or defaultValue when it is not set.
// An explicitly empty value is returned as is.
func Getenv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
