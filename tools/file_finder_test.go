package tools

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestGetLasFilesToProcess(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.las"))
	touch(t, filepath.Join(root, "b.LAS"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "nested", "c.las"))

	finder := NewStandardFileFinder()

	tests := []struct {
		name string
		opts *viewer.ViewerOptions
		want []string
	}{
		{
			name: "single file",
			opts: &viewer.ViewerOptions{Input: filepath.Join(root, "a.las")},
			want: []string{filepath.Join(root, "a.las")},
		},
		{
			name: "folder",
			opts: &viewer.ViewerOptions{Input: root, FolderProcessing: true},
			want: []string{filepath.Join(root, "a.las"), filepath.Join(root, "b.LAS")},
		},
		{
			name: "recursive folder",
			opts: &viewer.ViewerOptions{Input: root, FolderProcessing: true, Recursive: true},
			want: []string{filepath.Join(root, "a.las"), filepath.Join(root, "b.LAS"), filepath.Join(root, "nested", "c.las")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := finder.GetLasFilesToProcess(tt.opts)
			require.NoError(t, err)
			sort.Strings(files)
			sort.Strings(tt.want)
			assert.Equal(t, tt.want, files)
		})
	}
}

func TestGetLasFilesMissingFolder(t *testing.T) {
	_, err := NewStandardFileFinder().GetLasFilesToProcess(&viewer.ViewerOptions{
		Input:            filepath.Join(t.TempDir(), "missing"),
		FolderProcessing: true,
	})
	assert.Error(t, err)
}

func TestCheckInputPath(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.las")
	touch(t, file)

	assert.NoError(t, CheckInputPath(file, false))
	assert.NoError(t, CheckInputPath(root, true))
	assert.Error(t, CheckInputPath(file, true))
	assert.Error(t, CheckInputPath(root, false))
	assert.Error(t, CheckInputPath(filepath.Join(root, "missing.las"), false))
}

func TestIsFloatEqual(t *testing.T) {
	assert.True(t, IsFloatEqual(1, 1+FloatMin/2))
	assert.True(t, IsFloatEqual(1+FloatMin/2, 1))
	assert.False(t, IsFloatEqual(1, 1.1))
	assert.False(t, IsFloatEqual(1.1, 1))
}

func TestFmtJSONString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, FmtJSONString(map[string]int{"a": 1}))
	assert.Equal(t, "marshal data fail", FmtJSONString(make(chan int)))
}
