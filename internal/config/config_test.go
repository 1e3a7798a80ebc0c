package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectEtc(t *testing.T) string {
	t.Helper()

	// the project root is two levels up from internal/config
	root, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(root, "etc") + string(filepath.Separator)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir + string(filepath.Separator)
}

const minimalConfig = `
[Webserver]
Port = 8000
URL = "http://localhost:8000"

[Google]
ClientID = "client-id"

[Token]
SigningKey = "secret"

[Log]
LogLevel = "info"
AppName = "identity"
ServiceName = "identity"
`

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectEtc(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.Equal(t, 8000, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineMySQL, cfg.DB.GormEngine)
	assert.NotEmpty(t, cfg.DB.Host)
	assert.NotEmpty(t, cfg.Google.ClientID)
	assert.True(t, cfg.Google.RequireVerifiedEmail)
	assert.Equal(t, 5*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.True(t, cfg.Log.Console.Enabled)
}

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, defaultShutDownTime, cfg.Webserver.ShutDownTime)
	assert.Equal(t, defaultBodyLimit, cfg.Webserver.BodyLimit)
	assert.Equal(t, EngineMySQL, cfg.DB.GormEngine)
	assert.Equal(t, defaultIssuerURL, cfg.Google.IssuerURL)
	assert.True(t, cfg.Google.RequireVerifiedEmail)
	assert.Equal(t, defaultTokenIssuer, cfg.Token.Issuer)
	assert.Equal(t, defaultAccessTTL, cfg.Token.AccessTTL)
	assert.Equal(t, defaultRefreshTTL, cfg.Token.RefreshTTL)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	assert.Error(t, err)
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{
		"Webserver": {"Port": 9000},
		"DB": {"GormEngine": "sqlite", "Path": "/var/lib/identity/identity.db"},
		"Google": {"RequireVerifiedEmail": false}
	}`)

	cfg, err := ReadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Webserver.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Webserver.URL, "fields absent from the JSON are kept")
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, "/var/lib/identity/identity.db", cfg.DB.Path)
	assert.False(t, cfg.Google.RequireVerifiedEmail)
	assert.Equal(t, "client-id", cfg.Google.ClientID)
}

func TestReadConfigEnvOverrideInvalid(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Webserver": `)

	_, err := ReadConfig(writeConfig(t, minimalConfig))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Webserver.Port = 8000
		c.Webserver.URL = "http://localhost:8000"
		c.Google.ClientID = "client-id"
		c.Token.SigningKey = "secret"
		c.DB.GormEngine = EnginePostgres

		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Webserver.Port = 0 }, wantErr: ErrWebServerPortCanNotBeZero},
		{name: "empty url", mutate: func(c *Config) { c.Webserver.URL = "" }, wantErr: ErrEmptyURL},
		{name: "no client id", mutate: func(c *Config) { c.Google.ClientID = "" }, wantErr: ErrEmptyGoogleClientID},
		{name: "no signing key", mutate: func(c *Config) { c.Token.SigningKey = "" }, wantErr: ErrEmptySigningKey},
		{name: "unknown engine", mutate: func(c *Config) { c.DB.GormEngine = "oracle" }, wantErr: ErrUnknownGormEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, defaultShutDownTime, c.Webserver.ShutDownTime)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	out, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "[Webserver]")
	assert.Contains(t, out, "ClientID = 'client-id'")

	out, err = DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, out, `"Port": 8000`)
	assert.Contains(t, out, `"ClientID": "client-id"`)
}
