package lexcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_TerminalsTable(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lex.toml")
	content := "[terminals]\n" +
		"ident = \"[A-Za-z_][A-Za-z0-9_]*\"\n" +
		"number = \"[0-9]+\"\n"
	assert.NoError(os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	assert.NoError(err)
	assert.Equal("[A-Za-z_][A-Za-z0-9_]*", m["ident"])
	assert.Equal("[0-9]+", m["number"])
}

func Test_Load_MissingTerminalsTable_ReturnsEmptyMap(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.toml")
	assert.NoError(os.WriteFile(path, []byte("title = \"no terminals here\"\n"), 0o644))

	m, err := Load(path)
	assert.NoError(err)
	assert.NotNil(m)
	assert.Empty(m)
}

func Test_Load_MissingFile_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(err)
}
