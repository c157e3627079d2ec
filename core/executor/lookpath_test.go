package executor

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/psh/core/env"
	"github.com/stretchr/testify/assert"
)

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), []byte("#!/bin/sh\n"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(other, "data"), []byte("#!/bin/sh\n"), 0755))
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	cases := map[string]struct {
		path    string
		file    string
		want    string
		wantErr error
	}{
		"found in path": {
			path: dir,
			file: "tool",
			want: filepath.Join(dir, "tool"),
		},
		"later entry wins over non executable": {
			path: dir + ":" + other,
			file: "data",
			want: filepath.Join(other, "data"),
		},
		"missing": {
			path:    dir,
			file:    "nope",
			wantErr: ErrNotFound,
		},
		"not executable": {
			path:    dir,
			file:    "data",
			wantErr: fs.ErrPermission,
		},
		"directory": {
			path:    dir,
			file:    "subdir",
			wantErr: fs.ErrPermission,
		},
		"empty path": {
			path:    "",
			file:    "tool",
			wantErr: ErrNotFound,
		},
		"absolute": {
			path: "",
			file: filepath.Join(dir, "tool"),
			want: filepath.Join(dir, "tool"),
		},
		"absolute missing": {
			path:    dir,
			file:    filepath.Join(dir, "nope"),
			wantErr: ErrNotFound,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			environment := env.New()
			environment.Setenv(env.Path, tc.path)

			got, err := LookPath(environment, tc.file)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookPath_relativeEntry(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), []byte("#!/bin/sh\n"), 0755))

	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	environment := env.New()
	environment.Setenv(env.Path, ":/nonexistent")

	got, err := LookPath(environment, "tool")
	assert.NoError(t, err)
	assert.Equal(t, "./tool", got)
}
