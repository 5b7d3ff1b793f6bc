package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// imdbTitleURL is the public IMDb page of a title.
const imdbTitleURL = "https://www.imdb.com/title/"

// IMDbURL returns the IMDb page for an imdbID such as "tt0111161".
func IMDbURL(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, "tt") || len(id) < 3 {
		return "", fmt.Errorf("%w: not an IMDb id: %q", ErrInvalidArgument, id)
	}
	return imdbTitleURL + url.PathEscape(id) + "/", nil
}

// browserCommand returns the command that opens target on the current platform.
func browserCommand(target string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(target string) error {
	cmd, err := browserCommand(target)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
