// Package deps checks the external command-line tools the pipeline shells
// out to. Missing required binaries are a startup-time fatal error, not a
// mid-run one: an hour of transcription should never end with "ffmpeg not
// found".
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scrub/internal/services"
)

// Requirement defines an external dependency the toolkit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the base requirement set for the given operations.
func Required(needTranscription bool) []Requirement {
	requirements := []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Audio extraction and interval editing"},
		{Name: "FFprobe", Command: "ffprobe", Description: "Media stream inspection"},
	}
	if needTranscription {
		requirements = append(requirements, Requirement{
			Name:        "uvx",
			Command:     "uvx",
			Description: "Runs WhisperX for speech recognition",
		})
	}
	return requirements
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify returns a configuration error naming every missing required binary,
// or nil when all requirements are satisfied.
func Verify(requirements []Requirement) error {
	var missing []string
	for _, status := range CheckBinaries(requirements) {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Detail)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "deps", "verify", strings.Join(missing, "; "), nil)
}
