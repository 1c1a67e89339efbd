package config

import "os"

func IsDebug() bool {
	return os.Getenv("HERO_DEBUG") == "1"
}

// IsJSONLog reports whether logs should be written as JSON lines.
func IsJSONLog() bool {
	return os.Getenv("HERO_LOG_FORMAT") == "json"
}
