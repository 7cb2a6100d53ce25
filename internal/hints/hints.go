// Package hints builds the short follow-up advice printed under CLI errors.
// Every hint renders as "\n  hint: <text>" so it can be appended directly to
// an error message; an empty string means there is nothing useful to add.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// IsInContainer reports whether the process runs inside a container.
// It is a variable so tests can replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// maxCandidates bounds how many source files ForSourceNotFound lists.
const maxCandidates = 10

// ForBrowserConnect suggests the rod environment variables worth setting
// when Chrome fails to start.
func ForBrowserConnect() string {
	var tips []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use a local Chrome")
	}
	return join(tips)
}

// ForTimeout points at the --timeout flag.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForConfigNotFound suggests --config, or creating the file in the user
// config directory when it was among the searched paths.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, "go-md2html") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForSourceNotFound lists Markdown files that could have been meant.
func ForSourceNotFound(candidates []string) string {
	if len(candidates) == 0 {
		return format("no .md files in this directory; pass a path to the source file")
	}
	shown := candidates
	more := ""
	if len(shown) > maxCandidates {
		shown = shown[:maxCandidates]
		more = ", ..."
	}
	return format("available: " + strings.Join(shown, ", ") + more)
}

// ForDestination covers unwritable output paths.
func ForDestination() string {
	return format("check the output directory exists and is writable, or use -o")
}

// ForStyleNotFound lists the built-in style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTheme names a few chroma styles.
func ForTheme() string {
	return format("try github, monokai, dracula or solarized-dark")
}

func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(tips []string) string {
	if len(tips) == 0 {
		return ""
	}
	return format(strings.Join(tips, "; "))
}
