package project

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestLoadFromWalksUp(t *testing.T) {
	dir := fs.NewDir(t, "phpast",
		fs.WithFile(ConfigFile, `
include = ["src", "tests"]
exclude = ["*Test.php", "fixtures"]
extensions = ["php", ".inc"]
workers = 3
output = "json"

[watch]
interval = "250ms"
`),
		fs.WithDir("src",
			fs.WithFile("a.php", "<?php"),
			fs.WithFile("b.inc", "<?php"),
			fs.WithFile("c.txt", ""),
			fs.WithDir("deep", fs.WithFile("d.php", "<?php")),
			fs.WithDir("fixtures", fs.WithFile("e.php", "<?php")),
		),
		fs.WithDir("tests", fs.WithFile("ATest.php", "<?php"), fs.WithFile("helpers.php", "<?php")),
		fs.WithDir("vendor", fs.WithFile("v.php", "<?php")),
	)
	defer dir.Remove()

	proj, err := LoadFrom(dir.Join("src", "deep"))
	assert.NilError(t, err)
	assert.Equal(t, proj.ConfigPath, dir.Join(ConfigFile))
	assert.Equal(t, proj.Config.Workers, 3)
	assert.Equal(t, proj.Config.Output, "json")
	assert.Equal(t, proj.Config.Watch.Interval.Duration, 250*time.Millisecond)
	assert.DeepEqual(t, proj.Config.Extensions, []string{".php", ".inc"})

	files, err := proj.Files()
	assert.NilError(t, err)
	assert.DeepEqual(t, files, []string{
		dir.Join("src", "a.php"),
		dir.Join("src", "b.inc"),
		dir.Join("src", "deep", "d.php"),
		dir.Join("tests", "helpers.php"),
	})
}

func TestDefaults(t *testing.T) {
	dir := fs.NewDir(t, "phpast",
		fs.WithFile("index.php", "<?php"),
		fs.WithDir(".git", fs.WithFile("x.php", "")),
		fs.WithDir("vendor", fs.WithFile("v.php", "<?php")),
	)
	defer dir.Remove()

	proj, err := LoadFrom(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, proj.ConfigPath, "")
	assert.Equal(t, proj.Config.Workers, runtime.NumCPU())
	assert.Equal(t, proj.Config.Output, "tree")
	assert.Equal(t, proj.Config.Watch.Interval.Duration, time.Second)

	files, err := proj.Files()
	assert.NilError(t, err)
	assert.DeepEqual(t, files, []string{filepath.Join(proj.RootDir, "index.php")})
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "include = [", "parse"},
		{"unknown key", "includes = []", "unknown key includes"},
		{"bad pattern", `exclude = ["["]`, `exclude pattern "["`},
		{"absolute include", `include = ["/src"]`, "must be relative"},
		{"bad duration", "[watch]\ninterval = \"soon\"", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fs.NewDir(t, "phpast", fs.WithFile(ConfigFile, tt.content))
			defer dir.Remove()

			_, err := LoadConfig(dir.Join(ConfigFile))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestExcluded(t *testing.T) {
	proj := &Project{Config: Config{Exclude: []string{"vendor", "*.blade.php", "app/cache/*"}}}
	tests := []struct {
		rel  string
		want bool
	}{
		{".", false},
		{"vendor", true},
		{"lib/vendor/x.php", true},
		{"views/a.blade.php", true},
		{"app/cache/c.php", true},
		{"app/Cache.php", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, proj.Excluded(tt.rel), tt.want)
		})
	}
}
