package media

import (
	"path/filepath"
	"strings"
)

// Kind is the input category of an Item.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Target formats of the two derived artifacts.
const (
	AudioExt = ".mp3"
	TextExt  = ".txt"
)

// Item is one discovered input file. Items are rebuilt from a directory
// listing on every run and never modified afterwards.
type Item struct {
	Path string
	Stem string
	Kind Kind
}

// NewItem builds an Item for path, deriving the stem from its base name.
func NewItem(path string, kind Kind) Item {
	return Item{Path: path, Stem: Stem(path), Kind: kind}
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Layout holds the output directories.
type Layout struct {
	AudioDir string
	TextDir  string
}

// Outputs are the artifact paths of one item.
type Outputs struct {
	Audio string
	Text  string
}

// Outputs derives the artifact paths of it from its stem alone. An audio item
// is its own audio artifact.
func (l Layout) Outputs(it Item) Outputs {
	out := Outputs{
		Audio: filepath.Join(l.AudioDir, it.Stem+AudioExt),
		Text:  filepath.Join(l.TextDir, it.Stem+TextExt),
	}
	if it.Kind == KindAudio {
		out.Audio = it.Path
	}
	return out
}
