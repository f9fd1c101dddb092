// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	filesDir = "files"

	// Icon is the notification icon, relative to the data directory.
	Icon = "ontask.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into appDir under the XDG data
// directory. Files that already exist are left alone.
func Install(appDir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(filesDir, filepath.FromSlash(p))
			if err != nil {
				return err
			}

			destPath, err := xdg.DataFile(filepath.Join(appDir, rel))
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return err
			}

			b, err := embeddedFiles.ReadFile(p)
			if err != nil {
				return err
			}

			return os.WriteFile(destPath, b, 0o644)
		},
	)
}

// Path returns the installed location of name, or an empty string if it
// has not been installed.
func Path(appDir, name string) string {
	p, err := xdg.SearchDataFile(path.Join(appDir, name))
	if err != nil {
		return ""
	}

	return p
}
