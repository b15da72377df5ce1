// Package desktop wraps OS-level integrations: opening files, folders, and
// URLs with the user's default applications, and tagging files with Finder
// comments on macOS. Everything here is best-effort; failures are ignored
// because none of it is needed for correct processing.
package desktop

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// OpenURL opens a URL in the default browser.
func OpenURL(url string) {
	launch(url)
}

// OpenFile opens a file with its default application.
func OpenFile(path string) {
	launch(path)
}

// OpenDirectory opens a folder in the file manager.
func OpenDirectory(path string) {
	switch runtime.GOOS {
	case "windows":
		_ = exec.Command("explorer", path).Start()
	default:
		launch(path)
	}
}

func launch(target string) {
	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", target).Start()
	case "windows":
		_ = exec.Command("cmd", "/c", "start", "", target).Start()
	default:
		_ = exec.Command("xdg-open", target).Start()
	}
}

// SetFinderComment attaches a Finder comment to a file. Only macOS supports
// this; elsewhere it is a no-op.
func SetFinderComment(path, comment string) {
	if runtime.GOOS != "darwin" {
		return
	}
	safeComment := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(comment)
	script := fmt.Sprintf(`tell application "Finder" to set comment of (POSIX file %q) to "%s"`, path, safeComment)
	_ = exec.Command("osascript", "-e", script).Run()
}
