package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackaholics/identity/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				GormEngine: config.EngineMySQL,
				Host:       "127.0.0.1",
				Port:       3306,
				User:       "identity",
				Password:   "secret",
				Name:       "identity",
				Extras:     "charset=utf8mb4&parseTime=True",
			},
			want: "identity:secret@tcp(127.0.0.1:3306)/identity?charset=utf8mb4&parseTime=True",
		},
		{
			name: "empty engine is mysql",
			db:   config.DB{Host: "db", Port: 3306, User: "u", Password: "p", Name: "n"},
			want: "u:p@tcp(db:3306)/n?",
		},
		{
			name: "postgres",
			db: config.DB{
				GormEngine: config.EnginePostgres,
				Host:       "pg",
				Port:       5432,
				User:       "u",
				Password:   "p",
				Name:       "n",
				Extras:     "sslmode=disable TimeZone=UTC",
			},
			want: "host=pg port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC",
		},
		{
			name: "postgres without extras",
			db:   config.DB{GormEngine: config.EnginePostgres, Host: "pg", Port: 5432, User: "u", Password: "p", Name: "n"},
			want: "host=pg port=5432 user=u password=p dbname=n",
		},
		{
			name: "sqlite",
			db:   config.DB{GormEngine: config.EngineSQLite, Path: "./identity.db"},
			want: "./identity.db",
		},
		{
			name: "sqlite with pragmas",
			db:   config.DB{GormEngine: config.EngineSQLite, Path: "./identity.db", Extras: "?_pragma=busy_timeout(5000)"},
			want: "./identity.db?_pragma=busy_timeout(5000)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(&config.Config{DB: tt.db}))
		})
	}
}

func TestRedact(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Host: "db", Port: 3306, User: "u", Password: "secret", Name: "n"}}

	assert.NotContains(t, Redact(cfg), "secret")
	assert.Contains(t, Create(cfg), "secret", "Redact must not modify the config")
}
