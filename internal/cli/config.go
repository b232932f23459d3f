package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	NoColor   bool
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GAMEHUB_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("GAMEHUB_OUTPUT", "text"),
		NoColor:   os.Getenv("NO_COLOR") != "",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
