// Package version holds build information of the tongue CLI.
// Values can be overridden at build time via -ldflags "-X tongue/internal/version.GitCommit=...".
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is a snapshot of the build variables.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}

// Short returns the commit hash cut to seven characters.
func (i Info) Short() string {
	if len(i.GitCommit) > 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}

// Colored renders the version with major, minor and patch in distinct colors.
// Non-numeric versions are returned unchanged.
func (i Info) Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(i.Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return i.Version
	}
	palette := []*color.Color{
		color.New(color.FgYellow, color.Bold),
		color.New(color.FgGreen, color.Bold),
		color.New(color.FgBlue, color.Bold),
	}
	for k, c := range palette {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[k] = c.Sprint(parts[k])
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

func (i Info) String() string {
	if i.GitCommit == "" {
		return "tongue " + i.Version
	}
	return fmt.Sprintf("tongue %s (%s)", i.Version, i.Short())
}
