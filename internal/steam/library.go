package steam

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const gameDataDir = "LocalLow/10 Chambers Collective/GTFO"

var libraryIndexes = []string{
	".steam/steam/steamapps/libraryfolders.vdf",
	".local/share/Steam/steamapps/libraryfolders.vdf",
}

// ParseLibraryPath returns the path of the Steam library that lists appID in
// a libraryfolders.vdf document.
func ParseLibraryPath(appID uint32, r io.Reader) (string, bool) {
	id := fmt.Sprintf("\"%d\"", appID)
	var lastPath string
	seen := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, `"path"`):
			fields := strings.Split(line, `"`)
			if len(fields) >= 4 {
				lastPath = fields[3]
				seen = true
			}
		case strings.HasPrefix(line, id):
			return lastPath, seen
		}
	}
	return "", false
}

// FindProtonAppData locates GTFO's Proton prefix AppData directory under home.
func FindProtonAppData(home string) (string, bool) {
	for _, rel := range libraryIndexes {
		file, err := os.Open(filepath.Join(home, rel))
		if err != nil {
			continue
		}
		library, ok := ParseLibraryPath(AppID, file)
		_ = file.Close()
		if !ok {
			continue
		}
		return filepath.Join(library, "steamapps", "compatdata", fmt.Sprint(AppID),
			"pfx", "drive_c", "users", "steamuser", "AppData"), true
	}
	return "", false
}

// DefaultDataPath returns the folder the game writes its session logs to.
func DefaultDataPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", filepath.FromSlash(gameDataDir)), nil
	}
	appData, ok := FindProtonAppData(home)
	if !ok {
		return "", fmt.Errorf("steam library with app %d not found under %q", AppID, home)
	}
	return filepath.Join(appData, filepath.FromSlash(gameDataDir)), nil
}
