package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "toml", args: []string{"config", "--config", "../etc/"}, want: "[Webserver]"},
		{name: "json", args: []string{"config", "--config", "../etc/", "--json"}, want: `"Webserver": {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			dumpJSON = false

			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)

			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestConfigCommandMissingFile(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "--config", t.TempDir() + "/"})

	assert.Error(t, rootCmd.Execute())
}
