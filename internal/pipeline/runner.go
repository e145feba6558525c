// Package pipeline orchestrates the full script-to-subtitle flow: probe the
// source, extract audio, transcribe (or reuse a cached transcript), align
// the script against the timed segments, and emit an SRT file.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scriptsync/internal/align"
	"scriptsync/internal/config"
	"scriptsync/internal/language"
	"scriptsync/internal/logging"
	"scriptsync/internal/media"
	"scriptsync/internal/script"
	"scriptsync/internal/srt"
	"scriptsync/internal/textutil"
	"scriptsync/internal/transcriptcache"
	"scriptsync/internal/whisper"
)

// Transcriber converts an audio file into timed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir string) ([]align.Segment, error)
	Model() string
}

// MediaTools covers the ffmpeg operations the pipeline needs.
type MediaTools interface {
	Probe(ctx context.Context, path string) (media.ProbeResult, error)
	ExtractAudio(ctx context.Context, source string, audioIndex int, dest string) error
}

// TranscriptStore is the subset of the cache the pipeline uses.
type TranscriptStore interface {
	Get(ctx context.Context, key transcriptcache.Key) ([]align.Segment, bool, error)
	Put(ctx context.Context, key transcriptcache.Key, segments []align.Segment) error
}

// Request describes one subtitle generation run.
type Request struct {
	// MediaPath is the source video or audio file.
	MediaPath string
	// ScriptPath is the script text file. Empty selects passthrough mode.
	ScriptPath string
	// OutputPath overrides the derived .srt destination.
	OutputPath string
}

// ScoreDistribution buckets the match scores of emitted subtitles. Fallback
// counts subtitles claimed without similarity evidence (score zero).
type ScoreDistribution struct {
	High     int // score >= 0.8
	Medium   int // 0.5 <= score < 0.8
	Low      int // 0 < score < 0.5
	Fallback int
}

// Result summarizes a completed run.
type Result struct {
	RunID       string
	OutputPath  string
	DialogLines int
	Chunks      int
	Segments    int
	Cues        int
	Matched     int
	Fallbacks   int
	Dropped     int
	Scores      ScoreDistribution
	Passthrough bool
	CacheHit    bool
	Elapsed     time.Duration
}

// Runner executes subtitle generation runs.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	transcriber Transcriber
	tools       MediaTools
	cache       TranscriptStore
	segmenter   script.Segmenter
}

// NewRunner wires a runner from configuration. The transcript cache is
// optional; pass nil to disable reuse.
func NewRunner(cfg *config.Config, logger *slog.Logger, cache TranscriptStore) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: nil config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	segmenter, err := script.NewSegmenter()
	if err != nil {
		return nil, fmt.Errorf("pipeline: init segmenter: %w", err)
	}
	return &Runner{
		cfg:         cfg,
		logger:      logger,
		transcriber: whisper.NewService(cfg.Whisper.Binary, cfg.Whisper.Model, cfg.Whisper.Language),
		tools:       media.NewService(cfg.FFmpegBinary(), cfg.FFprobeBinary()),
		cache:       cache,
		segmenter:   segmenter,
	}, nil
}

// WithTranscriber replaces the transcriber (for testing).
func (r *Runner) WithTranscriber(t Transcriber) { r.transcriber = t }

// WithMediaTools replaces the ffmpeg wrapper (for testing).
func (r *Runner) WithMediaTools(t MediaTools) { r.tools = t }

// Run executes one generation run end to end.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	result := &Result{RunID: uuid.NewString()[:8]}
	logger := r.logger.With(logging.String("run_id", result.RunID))

	mediaPath := strings.TrimSpace(req.MediaPath)
	if mediaPath == "" {
		return nil, fmt.Errorf("pipeline: media path required")
	}
	if _, err := os.Stat(mediaPath); err != nil {
		return nil, fmt.Errorf("pipeline: source: %w", err)
	}

	segments, cacheHit, err := r.transcribe(ctx, logger, mediaPath, result.RunID)
	if err != nil {
		return nil, err
	}
	result.CacheHit = cacheHit
	result.Segments = len(segments)
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	var cues []srt.Cue
	scriptPath := strings.TrimSpace(req.ScriptPath)
	if r.cfg.Alignment.UseScript && scriptPath != "" {
		subtitles, stats, err := r.alignScript(logger, scriptPath, segments)
		if err != nil {
			return nil, err
		}
		result.applyStats(stats)
		cues = srt.FromSubtitles(subtitles, r.cfg.Alignment.IncludeSpeaker)
	} else {
		result.Passthrough = true
		cues = passthroughCues(segments)
		logger.Info("passthrough mode, emitting raw transcription",
			logging.Int("segments", len(segments)))
	}

	outputPath := r.resolveOutputPath(mediaPath, req.OutputPath)
	if err := srt.WriteFile(outputPath, cues); err != nil {
		return nil, fmt.Errorf("pipeline: write subtitles: %w", err)
	}

	result.OutputPath = outputPath
	result.Cues = len(cues)
	result.Elapsed = time.Since(started)
	logger.Info("subtitles written",
		logging.String("output", outputPath),
		logging.Int("cues", result.Cues),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

// AlignTranscript aligns an existing transcript file (whisper JSON or SRT)
// against a script without invoking any external tool.
func (r *Runner) AlignTranscript(ctx context.Context, transcriptPath, scriptPath, outputPath string) (*Result, error) {
	started := time.Now()
	result := &Result{RunID: uuid.NewString()[:8]}
	logger := r.logger.With(logging.String("run_id", result.RunID))

	segments, err := loadTranscript(transcriptPath)
	if err != nil {
		return nil, err
	}
	result.Segments = len(segments)
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	subtitles, stats, err := r.alignScript(logger, scriptPath, segments)
	if err != nil {
		return nil, err
	}
	result.applyStats(stats)

	cues := srt.FromSubtitles(subtitles, r.cfg.Alignment.IncludeSpeaker)
	if outputPath == "" {
		outputPath = r.resolveOutputPath(transcriptPath, "")
	}
	if err := srt.WriteFile(outputPath, cues); err != nil {
		return nil, fmt.Errorf("pipeline: write subtitles: %w", err)
	}

	result.OutputPath = outputPath
	result.Cues = len(cues)
	result.Elapsed = time.Since(started)
	return result, nil
}

func (r *Runner) transcribe(ctx context.Context, logger *slog.Logger, mediaPath, runID string) ([]align.Segment, bool, error) {
	audioIndex := 0
	if probe, err := r.tools.Probe(ctx, mediaPath); err != nil {
		logger.Warn("probe failed, assuming first audio stream",
			logging.Error(err))
	} else {
		index := probe.FirstAudioStream()
		if index < 0 {
			return nil, false, ErrNoAudio
		}
		audioIndex = index
	}

	workDir := filepath.Join(r.cfg.Paths.WorkDir, runID)
	base := textutil.SanitizeBaseName(strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath)))
	audioPath := filepath.Join(workDir, base+".wav")

	logger.Info("extracting audio",
		logging.String("source", mediaPath),
		logging.Int("stream", audioIndex))
	if err := r.tools.ExtractAudio(ctx, mediaPath, audioIndex, audioPath); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrExternalTool, err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	key, err := r.cacheKey(audioPath)
	if err == nil && r.cache != nil {
		if cached, ok, cacheErr := r.cache.Get(ctx, key); cacheErr == nil && ok {
			logger.Info("transcript cache hit",
				logging.String("model", key.Model),
				logging.Int("segments", len(cached)))
			return cached, true, nil
		}
	}

	logger.Info("transcribing",
		logging.String("model", r.transcriber.Model()))
	segments, err := r.transcriber.Transcribe(ctx, audioPath, workDir)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrExternalTool, err)
	}

	if r.cache != nil && key.AudioHash != "" {
		if err := r.cache.Put(ctx, key, segments); err != nil {
			logger.Warn("transcript cache store failed", logging.Error(err))
		}
	}
	return segments, false, nil
}

func (r *Runner) cacheKey(audioPath string) (transcriptcache.Key, error) {
	hash, err := transcriptcache.HashFile(audioPath)
	if err != nil {
		return transcriptcache.Key{}, err
	}
	return transcriptcache.Key{
		AudioHash: hash,
		Model:     r.transcriber.Model(),
		Language:  r.cfg.Whisper.Language,
	}, nil
}

type alignStats struct {
	dialogLines int
	chunks      int
	matched     int
	fallbacks   int
	dropped     int
	scores      ScoreDistribution
}

func (r *Runner) alignScript(logger *slog.Logger, scriptPath string, segments []align.Segment) ([]align.Subtitle, alignStats, error) {
	content, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, alignStats{}, fmt.Errorf("pipeline: read script: %w", err)
	}

	lines := script.Parse(string(content))
	if len(lines) == 0 {
		return nil, alignStats{}, ErrNoDialog
	}
	chunks := script.ChunkDialog(lines, r.segmenter, r.cfg.Alignment.MaxWordsPerChunk)
	if len(chunks) == 0 {
		return nil, alignStats{}, ErrNoDialog
	}
	logger.Debug("script parsed",
		logging.Int("dialog_lines", len(lines)),
		logging.String("speakers", strings.Join(speakerNames(lines), ", ")))

	subtitles := align.Align(chunks, segments, align.Options{
		Threshold: r.cfg.Alignment.SimilarityThreshold,
		Workers:   r.cfg.Alignment.Workers,
	})

	stats := alignStats{
		dialogLines: len(lines),
		chunks:      len(chunks),
		dropped:     len(segments) - len(subtitles),
	}
	for _, sub := range subtitles {
		switch {
		case sub.MatchScore >= 0.8:
			stats.matched++
			stats.scores.High++
		case sub.MatchScore >= 0.5:
			stats.matched++
			stats.scores.Medium++
		case sub.MatchScore > 0:
			stats.matched++
			stats.scores.Low++
		default:
			stats.fallbacks++
			stats.scores.Fallback++
		}
	}
	logger.Info("alignment complete",
		logging.Int("chunks", len(chunks)),
		logging.Int("matched", stats.matched),
		logging.Int("fallbacks", stats.fallbacks),
		logging.Int("dropped", stats.dropped))
	return subtitles, stats, nil
}

func (r *Result) applyStats(stats alignStats) {
	r.DialogLines = stats.dialogLines
	r.Chunks = stats.chunks
	r.Matched = stats.matched
	r.Fallbacks = stats.fallbacks
	r.Dropped = stats.dropped
	r.Scores = stats.scores
}

// speakerNames lists the distinct speakers in appearance order, title-cased
// for readability.
func speakerNames(lines []script.DialogLine) []string {
	seen := make(map[string]struct{}, len(lines))
	var names []string
	for _, line := range lines {
		if _, ok := seen[line.Speaker]; ok {
			continue
		}
		seen[line.Speaker] = struct{}{}
		names = append(names, language.DisplaySpeaker(line.Speaker))
	}
	return names
}

func (r *Runner) resolveOutputPath(sourcePath, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	base := textutil.SanitizeBaseName(strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath)))
	dir := r.cfg.Paths.OutputDir
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Dir(sourcePath)
	}
	return filepath.Join(dir, base+".srt")
}

func passthroughCues(segments []align.Segment) []srt.Cue {
	cues := make([]srt.Cue, 0, len(segments))
	for i, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		cues = append(cues, srt.Cue{
			Index: i + 1,
			Start: segment.Start,
			End:   segment.End,
			Text:  text,
		})
	}
	for i := range cues {
		cues[i].Index = i + 1
	}
	return cues
}

func loadTranscript(path string) ([]align.Segment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return whisper.ParseSegmentsFile(path)
	case ".srt":
		cues, err := srt.ParseFile(path)
		if err != nil {
			return nil, err
		}
		segments := make([]align.Segment, 0, len(cues))
		for _, cue := range cues {
			segments = append(segments, align.Segment{Start: cue.Start, End: cue.End, Text: cue.Text})
		}
		return segments, nil
	default:
		return nil, fmt.Errorf("pipeline: unsupported transcript format %q", filepath.Ext(path))
	}
}
