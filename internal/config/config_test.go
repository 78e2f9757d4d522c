package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
	"kinetic-table/pkg/hal"
	"kinetic-table/pkg/patterns"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, hal.DefaultConfig(), c.HAL())
	assert.Equal(t, "wave", c.Pattern.Name)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
table:
  rows: 8
  cols: 12
  max_speed: 20
  rest_at_midpoint: true
sim:
  tps: 30
pattern:
  name: ripple
  params:
    frequency: "4"
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Table.Rows)
	assert.Equal(t, 12, c.Table.Cols)
	assert.Equal(t, 20.0, c.Table.MaxSpeed)
	assert.Equal(t, 100.0, c.Table.MaxHeight, "unset keys keep defaults")
	assert.True(t, c.Table.RestAtMidpoint)
	assert.Equal(t, 30, c.Sim.TPS)
	assert.Equal(t, 5, c.Sim.MaxCatchUp)
	assert.Equal(t, "ripple", c.Pattern.Name)
	assert.Equal(t, "4", c.Pattern.Params["frequency"])
	require.NoError(t, c.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestFromMap(t *testing.T) {
	base := DefaultConfig()
	c := base.FromMap(map[string]string{
		"rows":          "10",
		"cols":          "-4",
		"max_speed":     "fast",
		"max_height":    "60",
		"tps":           "120",
		"pattern":       "spiral",
		"param.arms":    "5",
		"param.":        "ignored",
		"unknown_thing": "1",
	})

	assert.Equal(t, 10, c.Table.Rows)
	assert.Equal(t, 30, c.Table.Cols)
	assert.Equal(t, 50.0, c.Table.MaxSpeed)
	assert.Equal(t, 60.0, c.Table.MaxHeight)
	assert.Equal(t, 120, c.Sim.TPS)
	assert.Equal(t, "spiral", c.Pattern.Name)
	assert.Equal(t, map[string]string{"arms": "5"}, c.Pattern.Params)
	assert.Empty(t, base.Pattern.Params, "FromMap must not alias the receiver's params")
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Table.MinHeight = 200
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, hal.ErrInvalidArgument)

	c = DefaultConfig()
	c.Sim.TPS = 0
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Pattern.Name = ""
	assert.Error(t, c.Validate())
}

func TestParseOverrides(t *testing.T) {
	m, err := ParseOverrides([]string{"rows=4", " param.speed = 2 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rows": "4", "param.speed": "2"}, m)

	_, err = ParseOverrides([]string{"rows"})
	assert.Error(t, err)
}

func TestExampleConfigLoads(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs", "table.yaml"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "mountain", c.Pattern.Name)
	assert.Contains(t, c.Pattern.Params, "peaks")

	heights := core.Range{Min: c.Table.MinHeight, Max: c.Table.MaxHeight}
	e := patterns.NewEngine(core.Size{Rows: c.Table.Rows, Cols: c.Table.Cols}, heights)
	require.NoError(t, e.SetPattern(c.Pattern.Name, c.Pattern.Params))
	frame := e.Generate(0)
	assert.Greater(t, mat.Max(frame)-mat.Min(frame), 0.5*heights.Span(), "example table should show real relief")
	assert.LessOrEqual(t, mat.Max(frame), heights.Max)
}
