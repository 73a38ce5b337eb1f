package ignore

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	m := Default()

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{".git", true, true},
		{".git/objects/aa", false, true},
		{"vendor/.git", true, true},
		{".gitignore", false, false},
		{"main.go", false, false},
		{"data/model.bin", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.path, tt.isDir), "path: %s", tt.path)
		})
	}
}

func TestLoadUserRules(t *testing.T) {
	fsys := fstest.MapFS{
		".gitignore": {Data: []byte("# comment\n*.log\ntemp\nbuild/\n!important.log\n")},
	}
	m, err := Load(fsys, ".gitignore")
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"debug.log", false, true},
		{"logs/debug.log", false, true},
		{"important.log", false, false},
		{"temp", true, true},
		{"src/temp", false, true},
		{"build", true, true},
		{"build/out.bin", false, true},
		{"main.go", false, false},
		{".git", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.path, tt.isDir), "path: %s", tt.path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(fstest.MapFS{}, ".gitignore")
	require.NoError(t, err)
	assert.True(t, m.Matches(".git", true))
	assert.False(t, m.Matches("a.log", false))
}

func TestLoadDisabled(t *testing.T) {
	fsys := fstest.MapFS{".gitignore": {Data: []byte("*\n")}}
	m, err := Load(fsys, "")
	require.NoError(t, err)
	assert.False(t, m.Matches("anything", false))
	assert.True(t, m.Matches(".git", true))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Matches(".git", true))
}

func TestMetaDirCannotBeNegated(t *testing.T) {
	fsys := fstest.MapFS{
		".gitignore": {Data: []byte("!.git\n!.git/\n!**/.git\n!.git/HEAD\n")},
	}
	m, err := Load(fsys, ".gitignore")
	require.NoError(t, err)

	for _, path := range []string{".git", ".git/HEAD", ".git/objects/ce", "vendor/.git"} {
		assert.True(t, m.Matches(path, path == ".git"), "path: %s", path)
	}
	assert.True(t, New("!.git").Matches(".git", true))
	assert.False(t, New("!.git").Matches(".gitignore", false))

	var nilMatcher *Matcher
	assert.True(t, nilMatcher.Matches(".git", true))
}
