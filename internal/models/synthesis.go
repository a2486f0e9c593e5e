package models

// Speech synthesis backends, in routing precedence order. The value recorded
// in SynthesisResult is always the backend that actually produced the file,
// which may differ from the requested one after fallback.
type TTSBackend string

const (
	BackendPremium TTSBackend = "premium"
	BackendFree    TTSBackend = "free"
	BackendLocal   TTSBackend = "local"
	BackendMock    TTSBackend = "mock"
)

// SynthesisResult describes a produced narration audio track. Duration is the
// word-count estimate, not a measurement of the rendered file.
type SynthesisResult struct {
	AudioPath string     `json:"audio_path"`
	Duration  int        `json:"duration"`
	Backend   TTSBackend `json:"backend"`
}
