package main

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/extractor"
	"github.com/nguyentantai21042004/transcript-flow/internal/gemini"
	"github.com/nguyentantai21042004/transcript-flow/internal/ledger"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/report"
	"github.com/nguyentantai21042004/transcript-flow/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// app holds the collaborators shared by every pass. The transcriber is
// created on the first pass that has work and reused afterwards.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	exec      executor.Executor
	gem       *gemini.Client
	layout    media.Layout
	ledger    ledger.Ledger
	resolver  *ledger.Resolver
	extractor extractor.Extractor
	classify  media.Options

	tr   transcriber.Transcriber
	pipe pipeline.Pipeline
}

func newApp(cfg *config.Config, log logger.Logger) *app {
	layout := media.Layout{AudioDir: cfg.Paths.Audio, TextDir: cfg.Paths.Text}
	exec := executor.New()
	l := ledger.NewFS(layout, cfg.Ledger.MinAudioBytes, cfg.Ledger.MinTextBytes)

	a := &app{
		cfg:       cfg,
		log:       log,
		exec:      exec,
		layout:    layout,
		ledger:    l,
		resolver:  ledger.NewResolver(l, layout),
		extractor: extractor.NewFFmpeg(cfg.FFmpeg, exec, log),
		classify: media.Options{
			VideoExtensions: media.NewExtensionSet(cfg.Media.VideoExtensions...),
			AudioExtensions: media.NewExtensionSet(cfg.Media.AudioExtensions...),
			Collision:       media.CollisionPolicy(cfg.Media.StemCollision),
		},
	}
	if len(cfg.Gemini.APIKeys) > 0 {
		a.gem = gemini.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	}
	return a
}

// runOnce classifies the input folders and converts whatever is pending.
// Only a failure to read the inputs is returned; item failures are reported.
func (a *app) runOnce(ctx context.Context) error {
	ws, err := media.Classify(a.cfg.Paths.Video, a.cfg.Paths.Audio, a.classify)
	if err != nil {
		return fmt.Errorf("classify inputs: %w", err)
	}

	for _, c := range ws.Collisions {
		if a.classify.Collision == media.CollisionWarn {
			a.log.Warn(ctx, "Audio %s shares its stem with a video and is treated as its extracted track", c.Path)
		} else {
			a.log.Debug(ctx, "Stem collision: %s (%s)", c.Path, a.classify.Collision)
		}
	}

	if ws.Len() == 0 {
		a.log.Info(ctx, "Nothing to convert. Put videos in %s or audio files in %s", a.cfg.Paths.Video, a.cfg.Paths.Audio)
		return a.summarize(ctx)
	}

	pipe, err := a.pipeline(ctx)
	if err != nil {
		return err
	}

	rep := pipe.Run(ctx, ws)
	for _, line := range pipeline.SummaryLines(rep, a.layout) {
		a.log.Info(ctx, "%s", line)
	}

	if a.cfg.Report.XLSXPath != "" {
		if err := report.WriteXLSX(a.cfg.Report.XLSXPath, rep, a.layout); err != nil {
			a.log.Warn(ctx, "Failed to write report %s: %v", a.cfg.Report.XLSXPath, err)
		} else {
			a.log.Info(ctx, "Report written: %s", a.cfg.Report.XLSXPath)
		}
	}

	return a.summarize(ctx)
}

// pipeline builds the transcriber and the pipeline on first use.
func (a *app) pipeline(ctx context.Context) (pipeline.Pipeline, error) {
	if a.pipe != nil {
		return a.pipe, nil
	}

	tr, err := transcriber.New(a.cfg, a.exec, a.gem, a.log)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}
	a.log.Info(ctx, "Transcriber ready: %s", a.cfg.Transcriber.Backend)

	a.tr = tr
	proc := processor.New(a.ledger, a.extractor, tr, a.cfg.Transcriber.Language, a.log)
	a.pipe = pipeline.New(a.resolver, proc, a.log)
	return a.pipe, nil
}

func (a *app) summarize(ctx context.Context) error {
	if !a.cfg.Summary.Enabled || a.gem == nil {
		return nil
	}
	s := summarizer.New(a.gem, a.cfg.Summary.Language, a.log)
	if _, err := s.SummarizeAll(ctx, a.cfg.Paths.Text, a.cfg.Paths.Summary); err != nil {
		a.log.Warn(ctx, "Summaries incomplete: %v", err)
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.tr == nil {
		return
	}
	if err := a.tr.Close(); err != nil {
		a.log.Warn(ctx, "Failed to close transcriber: %v", err)
	}
	a.tr = nil
}
