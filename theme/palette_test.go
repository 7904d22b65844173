package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gpl = `GIMP Palette
Name: bw
Columns: 2
# comment
  0   0   0	black
255 255 255	white
`

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bw.gpl")
	require.NoError(t, os.WriteFile(path, []byte(gpl), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "bw", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)
	assert.Equal(t, RGB{127, 127, 127}, p.Lookup(0.5))
	assert.Equal(t, RGB{255, 255, 255}, p.Lookup(2))
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	assert.NoError(t, err)
	assert.Same(t, Plasma, p)

	p, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)
	assert.Same(t, Plasma, p)
}

func TestThemeColorsAreHex(t *testing.T) {
	th := New(Plasma)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, string(th.Accent()))
	assert.Regexp(t, `^#[0-9a-f]{6}$`, string(th.Success()))
}
