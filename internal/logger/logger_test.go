package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "easycontact.log")
	l, closer, err := New(Options{Level: "debug", Format: "json", File: p})
	require.NoError(t, err)

	Component(l, "api").Debug("hello")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"hello"`)
	assert.Contains(t, string(b), `"component":"api"`)
}

func TestNew_UnknownLevelKeepsWarn(t *testing.T) {
	l, _, err := New(Options{Level: "chatty"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}
