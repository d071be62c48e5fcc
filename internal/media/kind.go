package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a candidate by how its capture date can be read.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

var defaultImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".heic", ".heif", ".tiff", ".tif", ".webp",
	".gif", ".cr2", ".cr3", ".nef", ".arw", ".dng", ".orf", ".rw2",
}

var defaultVideoExtensions = []string{
	".mp4", ".mov", ".m4v", ".3gp", ".3g2",
}

// KindSet maps file extensions to media kinds.
type KindSet struct {
	byExt map[string]Kind
}

// DefaultKindSet covers the common image and ISO BMFF video extensions.
func DefaultKindSet() *KindSet {
	return NewKindSet(nil, nil)
}

// NewKindSet builds a KindSet from explicit extension lists; empty lists fall
// back to the defaults. Extensions must include the leading dot and be
// lowercase.
func NewKindSet(imageExts, videoExts []string) *KindSet {
	if len(imageExts) == 0 {
		imageExts = defaultImageExtensions
	}
	if len(videoExts) == 0 {
		videoExts = defaultVideoExtensions
	}
	byExt := make(map[string]Kind, len(imageExts)+len(videoExts))
	for _, ext := range imageExts {
		byExt[ext] = KindImage
	}
	for _, ext := range videoExts {
		byExt[ext] = KindVideo
	}
	return &KindSet{byExt: byExt}
}

// KindOf classifies a file by its name's extension. The display name is the
// right input for archive entries, whose extraction paths carry synthetic
// names.
func (s *KindSet) KindOf(name string) Kind {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return KindUnknown
	}
	return s.byExt[ext]
}
