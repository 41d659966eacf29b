package ledger

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
)

// State is the resolved conversion state of one item.
type State struct {
	Outputs        media.Outputs
	AudioDone      bool
	TextDone       bool
	NeedExtract    bool
	NeedTranscribe bool
	Skip           bool
}

// Resolver turns ledger answers into a State. It holds no state of its own.
type Resolver struct {
	ledger Ledger
	layout media.Layout
}

func NewResolver(l Ledger, layout media.Layout) *Resolver {
	return &Resolver{ledger: l, layout: layout}
}

// Resolve reports which stages of item are pending. A video is skipped only
// when both artifacts exist; an audio item only needs its transcript.
func (r *Resolver) Resolve(ctx context.Context, item media.Item) (State, error) {
	st := State{Outputs: r.layout.Outputs(item)}

	var err error
	if st.AudioDone, err = r.ledger.IsStageDone(ctx, item, StageExtract); err != nil {
		return State{}, err
	}
	if st.TextDone, err = r.ledger.IsStageDone(ctx, item, StageTranscribe); err != nil {
		return State{}, err
	}

	st.NeedExtract = item.Kind == media.KindVideo && !st.AudioDone
	st.NeedTranscribe = !st.TextDone
	if item.Kind == media.KindVideo {
		st.Skip = st.AudioDone && st.TextDone
	} else {
		st.Skip = st.TextDone
	}
	return st, nil
}
