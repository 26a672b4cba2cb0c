// Package exitcode provides standardized exit codes for foggybot
package exitcode

// Exit codes for the foggybot CLI
const (
	Success       = 0
	GeneralError  = 1
	ConfigError   = 2
	NetworkError  = 3
	PipelineError = 4
	GitError      = 5
	FileError     = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case NetworkError:
		return "Network error"
	case PipelineError:
		return "Pipeline error"
	case GitError:
		return "Git error"
	case FileError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
