package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
)

func runRender(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset flag state between runs.
	renderCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"render"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderDefaultSVG(t *testing.T) {
	out, err := runRender(t)
	require.NoError(t, err)

	want, err := loader.Markup(loader.Resolve(models.Options{}))
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", out)
}

func TestRenderFlagsAndPreset(t *testing.T) {
	out, err := runRender(t, "--preset", "bars", "--fill", "#abcdef", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Settings models.Settings `json:"settings"`
		Shapes   []models.Shape  `json:"shapes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 5, resp.Settings.NbRects)
	assert.Equal(t, "#abcdef", resp.Settings.Fill)
	assert.Len(t, resp.Shapes, 5)
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loader.svg")
	_, err := runRender(t, "--nb-rects", "2", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "<rect "))
}

func TestRenderStrict(t *testing.T) {
	_, err := runRender(t, "--nb-rects", "0")
	assert.NoError(t, err)

	_, err = runRender(t, "--nb-rects", "0", "--strict")
	assert.ErrorContains(t, err, "nbRects")
}

func TestRenderErrors(t *testing.T) {
	_, err := runRender(t, "--preset", "nope")
	assert.ErrorContains(t, err, `unknown preset "nope"`)

	_, err = runRender(t, "--format", "png")
	assert.ErrorContains(t, err, "unknown format")
}
