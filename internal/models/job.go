package models

// Job is the process-scoped state of one compile request. The working
// directory is exclusively owned by the job and removed when it finishes,
// success or failure; only the output file outlives it, for the retention
// window.
type Job struct {
	JobID      string
	WorkDir    string
	Clips      []RankedClip
	Script     string
	AudioMode  string
	Overlay    bool
	OutputPath string
}

const (
	AudioModeReplace = "replace"
	AudioModeMix     = "mix"
)

// ProcessingResult is the orchestrator's report for one job.
type ProcessingResult struct {
	Success          bool       `json:"success"`
	OutputPath       string     `json:"output_path,omitempty"`
	Duration         float64    `json:"duration,omitempty"`
	Resolution       string     `json:"resolution,omitempty"`
	NarrationBackend TTSBackend `json:"narration_backend,omitempty"`
	Error            string     `json:"error,omitempty"`
}
