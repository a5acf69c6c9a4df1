// Package fsutil provides filesystem utilities used by the evaluator and the
// command line.
package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tconf/tconf/pkg/url"
)

// Getwd returns the working directory as a file URL.
func Getwd() (url.URL, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return url.URL{}, err
	}
	return url.FromPath(pwd), nil
}

// TildeAbbr abbreviates the user's home directory to ~.
func TildeAbbr(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || home == "/" {
		// A missing or root home directory is likely a problem with the
		// environment, and abbreviating / would make paths longer.
		return path
	}
	home = filepath.Clean(home)
	if path == home {
		return "~"
	} else if strings.HasPrefix(path, home+"/") || (runtime.GOOS == "windows" && strings.HasPrefix(path, home+"\\")) {
		return "~" + path[len(home):]
	}
	return path
}
