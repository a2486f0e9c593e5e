package models

import (
	"mime/multipart"
	"sort"
)

const ClipCount = 5

// RankedClip is one uploaded input video plus the user's ranking metadata.
// Immutable once the pipeline starts; stages derive new files from it.
type RankedClip struct {
	SourcePath  string `json:"source_path"`
	Rank        int    `json:"rank" validate:"required,gte=1,lte=5"`
	Description string `json:"description"`
}

// ClipUpload is a single uploaded file with its ranking metadata, as parsed
// from the multipart compile request.
type ClipUpload struct {
	File        *multipart.FileHeader `validate:"required"`
	Rank        int                   `validate:"required,gte=1,lte=5"`
	Description string
}

// CompileInput is the validated payload of a compile request.
type CompileInput struct {
	Clips     []ClipUpload `validate:"required,len=5,dive"`
	Script    string       `validate:"required"`
	AudioMode string
	Overlay   bool
}

// SortClipsByRankDesc orders clips for the countdown: rank 5 first, rank 1 last.
func SortClipsByRankDesc(clips []RankedClip) {
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].Rank > clips[j].Rank
	})
}

// ValidRankPermutation reports whether the given ranks are exactly {1..5}.
func ValidRankPermutation(ranks []int) bool {
	if len(ranks) != ClipCount {
		return false
	}
	var seen [ClipCount + 1]bool
	for _, r := range ranks {
		if r < 1 || r > ClipCount || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}
