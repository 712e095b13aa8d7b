package config

import "os"

// Environment variables read by tapburst.
const (
	EnvConfig = "TAPBURST_CONFIG" // explicit settings file
	EnvLog    = "TAPBURST_LOG"    // debug log file; logging is off when unset
	EnvLevel  = "TAPBURST_LOG_LEVEL"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
