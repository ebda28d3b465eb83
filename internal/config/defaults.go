package config

import "time"

// Defaults returns the lowest-priority configuration layer.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      "go-item-keeper",
			TokenDuration:    8 * 24 * time.Hour,
			PasswordHashCost: 10,
			Version:          "1.0.0",
			LogLevel:         "info",
			Superuser: Superuser{
				Username: "admin",
			},
		},
		Storage: Storage{
			DB: DB{Driver: DriverPostgres},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
