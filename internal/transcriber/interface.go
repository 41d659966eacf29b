// Package transcriber turns audio files into text.
//
// A Transcriber is a long-lived handle to one speech-recognition backend. It
// is created once per process, passed by reference to its single owner and
// must not be called concurrently: none of the backends are reentrant.
package transcriber

import "context"

// Transcriber converts the audio file at audioPath to text. language is a
// hint such as "ko" or "en".
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
	Close() error
}
