package media

import (
	"path/filepath"
	"strings"
)

// ExtensionSet is a set of lower-case extensions with a leading dot.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalises exts ("MP4", "mp4" and ".mp4" are the same entry).
func NewExtensionSet(exts ...string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		s[e] = struct{}{}
	}
	return s
}

// Match reports whether the extension of name is in the set.
func (s ExtensionSet) Match(name string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Overlaps reports whether s and o share an extension.
func (s ExtensionSet) Overlaps(o ExtensionSet) bool {
	for e := range s {
		if _, ok := o[e]; ok {
			return true
		}
	}
	return false
}

func DefaultVideoExtensions() ExtensionSet {
	return NewExtensionSet(".mp4", ".webm", ".avi", ".mov", ".mkv")
}

func DefaultAudioExtensions() ExtensionSet {
	return NewExtensionSet(".mp3", ".wav", ".m4a", ".flac", ".aac")
}
