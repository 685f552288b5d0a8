package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/dbnav/internal/app"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dbnav dev\n", out.String())
}

func TestMissingConfigIsFatal(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()

	var cfgErr *app.ErrConfig
	require.ErrorAs(t, err, &cfgErr)
}

func TestFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"dsn", "config", "log-level", "log-file", "page-size"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
