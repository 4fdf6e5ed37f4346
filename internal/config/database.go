// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN renders the postgres keyword/value connection string; empty values are omitted.
func (d *DatabaseConfig) DSN() string {
	parts := []string{
		fmt.Sprintf("host=%s", d.Host),
		fmt.Sprintf("port=%s", d.Port),
		fmt.Sprintf("user=%s", d.User),
	}
	if d.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", d.Password))
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s", d.Database),
		fmt.Sprintf("sslmode=%s", d.SSLMode),
		"TimeZone=UTC",
	)
	return strings.Join(parts, " ")
}
