package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// browserCandidates mirrors the executables the headless allocator tries when
// no explicit path is configured, in the same preference order.
var browserCandidates = []string{
	"headless-shell",
	"headless_shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"google-chrome-beta",
	"chrome",
}

// CheckBrowser reports the browser binary the session provider will launch.
// When execPath is configured it is checked directly; otherwise the usual
// Chromium candidates are resolved from PATH.
func CheckBrowser(execPath string) Status {
	result := Status{
		Name:        "Browser",
		Description: "Headless Chromium used for platform login",
	}

	configured := strings.TrimSpace(execPath)
	if configured != "" {
		result.Command = configured
		info, err := os.Stat(configured)
		if err != nil {
			result.Detail = fmt.Sprintf("configured browser %q not found", configured)
			return result
		}
		if !isExecutable(info) {
			result.Detail = fmt.Sprintf("configured browser %q is not executable", configured)
			return result
		}
		result.Available = true
		return result
	}

	for _, candidate := range browserCandidates {
		if resolved, err := exec.LookPath(candidate); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
	}

	result.Command = browserCandidates[0]
	result.Detail = "no Chromium-family browser found on PATH"
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
