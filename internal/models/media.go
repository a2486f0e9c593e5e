package models

// MediaProperties holds the intrinsic properties of a media file as reported
// by the probe tool. It is recomputed on demand and never persisted.
type MediaProperties struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Duration  float64 `json:"duration"`
	FrameRate int     `json:"frame_rate"`
	HasAudio  bool    `json:"has_audio"`
	Codec     string  `json:"codec"`
}

// DefaultMediaProperties is what the probe reports when it cannot inspect a
// file. Probing is advisory, so callers get sane fallbacks instead of errors.
func DefaultMediaProperties() MediaProperties {
	return MediaProperties{
		Width:     0,
		Height:    0,
		Duration:  0,
		FrameRate: 30,
		HasAudio:  false,
		Codec:     "unknown",
	}
}
