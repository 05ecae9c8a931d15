package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	dsn := DSN(Config{Host: "db", Port: "3306", User: "bot", Password: "secret", Name: "payments"})

	assert.Equal(t, "bot:secret@tcp(db:3306)/payments?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormLogger.LogLevel
	}{
		{"silent", gormLogger.Silent},
		{"error", gormLogger.Error},
		{"info", gormLogger.Info},
		{"warn", gormLogger.Warn},
		{"", gormLogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, logLevel(tt.level), tt.level)
	}
}
