package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CollisionPolicy decides what happens to an audio input whose stem matches a video input.
type CollisionPolicy string

const (
	// CollisionMerge drops the audio file: it is taken to be the video's extracted track.
	CollisionMerge CollisionPolicy = "merge"
	// CollisionWarn drops it like CollisionMerge; callers log WorkSet.Collisions.
	CollisionWarn CollisionPolicy = "warn"
	// CollisionIndependent keeps it as a standalone audio item.
	CollisionIndependent CollisionPolicy = "independent"
)

// Options configures Classify. Zero-valued sets fall back to the defaults.
type Options struct {
	VideoExtensions ExtensionSet
	AudioExtensions ExtensionSet
	Collision       CollisionPolicy
}

// WorkSet is the classified input of one run.
type WorkSet struct {
	Videos []Item
	Audios []Item
	// Collisions lists audio inputs sharing a stem with a video input. Under
	// CollisionIndependent they are also present in Audios.
	Collisions []Item
}

// Len returns the number of items to process.
func (w WorkSet) Len() int {
	return len(w.Videos) + len(w.Audios)
}

// Classify lists videoDir and audioDir and sorts their entries into video and
// audio items by extension. Audio entries that share a stem with a video are
// handled according to opts.Collision. Classify only reads the directories.
func Classify(videoDir, audioDir string, opts Options) (WorkSet, error) {
	if opts.VideoExtensions == nil {
		opts.VideoExtensions = DefaultVideoExtensions()
	}
	if opts.AudioExtensions == nil {
		opts.AudioExtensions = DefaultAudioExtensions()
	}
	if opts.VideoExtensions.Overlaps(opts.AudioExtensions) {
		return WorkSet{}, errors.New("video and audio extension sets overlap")
	}
	if opts.Collision == "" {
		opts.Collision = CollisionMerge
	}

	videos, err := list(videoDir, opts.VideoExtensions, KindVideo)
	if err != nil {
		return WorkSet{}, fmt.Errorf("list video dir: %w", err)
	}
	candidates, err := list(audioDir, opts.AudioExtensions, KindAudio)
	if err != nil {
		return WorkSet{}, fmt.Errorf("list audio dir: %w", err)
	}

	videoStems := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		videoStems[v.Stem] = struct{}{}
	}

	ws := WorkSet{Videos: videos}
	for _, a := range candidates {
		if _, ok := videoStems[a.Stem]; ok {
			ws.Collisions = append(ws.Collisions, a)
			if opts.Collision != CollisionIndependent {
				continue
			}
		}
		ws.Audios = append(ws.Audios, a)
	}
	return ws, nil
}

// list returns the regular, non-hidden files of dir whose extension is in exts,
// in the lexical order os.ReadDir returns.
func list(dir string, exts ExtensionSet, kind Kind) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Type().IsRegular() && e.Type()&os.ModeSymlink == 0 {
			continue
		}
		if !exts.Match(e.Name()) {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		items = append(items, NewItem(path, kind))
	}
	return items, nil
}
