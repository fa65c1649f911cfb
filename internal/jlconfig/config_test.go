package jlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajbruin/jl/internal/jlerrors"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "jlrc.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func Test_Load_explicitFile(t *testing.T) {
	assert := assert.New(t)

	path := writeTempConfig(t, `
fieldsep = ","

[patterns]
users = "{id,name}"
`)

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(",", cfg.FieldSep)
	assert.Equal("{id,name}", cfg.Patterns["users"])
}

func Test_Load_missingExplicitFileIsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(err)
	kind, ok := jlerrors.KindOf(err)
	assert.True(ok)
	assert.Equal(jlerrors.Usage, kind)
}

func Test_Load_malformedExplicitFileIsUsageError(t *testing.T) {
	assert := assert.New(t)

	path := writeTempConfig(t, `this is not valid toml {{{`)

	_, err := Load(path)
	assert.Error(err)
	kind, ok := jlerrors.KindOf(err)
	assert.True(ok)
	assert.Equal(jlerrors.Usage, kind)
}

func Test_Resolve_passesThroughNonPreset(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}
	got, err := Resolve(cfg, "{a,b}")
	assert.NoError(err)
	assert.Equal("{a,b}", got)
}

func Test_Resolve_looksUpPreset(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{Patterns: map[string]string{"users": "{id,name}"}}
	got, err := Resolve(cfg, "@users")
	assert.NoError(err)
	assert.Equal("{id,name}", got)
}

func Test_Resolve_unknownPresetIsUsageError(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}
	_, err := Resolve(cfg, "@nope")
	assert.Error(err)
	kind, ok := jlerrors.KindOf(err)
	assert.True(ok)
	assert.Equal(jlerrors.Usage, kind)
}
