package extractor

import "context"

// Extractor produces a single-track audio file at outputPath from the media
// container at inputPath. On error nothing is left at outputPath.
type Extractor interface {
	Extract(ctx context.Context, inputPath, outputPath string) error
}
