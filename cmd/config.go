package cmd

import "time"

// Config carries every runtime setting the process needs. Values come from
// the environment; see cmd/app for the variable names.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	TokenTTL  time.Duration

	FCMCredentialsPath string

	OutboxBatchSize   int
	OutboxMaxAttempts int
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}
