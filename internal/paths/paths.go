package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "iconmill"
	ConfigFileName = "iconmill-config.json"
	LogFileName    = "iconmill.log"
	DBFileName     = "iconmill.db"
	IconsDirName   = "icons"
	SourceFileName = "app-icon.svg"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for iconmill:
//   - Windows: %APPDATA%\iconmill
//   - Unix:    ~/.config/iconmill
//
// Falls back to os.TempDir()/iconmill if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// DefaultIconsDir returns the icons directory next to the running
// binary: <dir of executable>/icons. Falls back to ./icons when the
// executable path cannot be determined (e.g. under `go run`).
func DefaultIconsDir() string {
	exe, err := os.Executable()
	if err != nil {
		return IconsDirName
	}
	return filepath.Join(filepath.Dir(exe), IconsDirName)
}
