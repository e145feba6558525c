package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/deps"
	"scriptsync/internal/language"
	"scriptsync/internal/pipeline"
	"scriptsync/internal/whisper"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var scriptPath string
	var outputPath string
	var model string
	var languageHint string
	var noScript bool
	var threshold float64
	var maxWords int
	var workers int
	var noSpeaker bool

	cmd := &cobra.Command{
		Use:   "generate <media-file>",
		Short: "Transcribe a media file and generate subtitles",
		Long:  "Extracts audio, transcribes it with whisper, and writes an .srt file. With --script the subtitles carry the script's wording; without one the raw transcription is emitted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if model != "" {
				normalized := strings.ToLower(strings.TrimSpace(model))
				if !whisper.ValidModel(normalized) {
					return fmt.Errorf("unknown model %q (expected one of %v)", model, whisper.Models())
				}
				cfg.Whisper.Model = normalized
			}
			if languageHint != "" {
				code, err := language.Normalize(languageHint)
				if err != nil {
					return err
				}
				cfg.Whisper.Language = code
			}
			if noScript {
				cfg.Alignment.UseScript = false
			}
			applyAlignmentFlags(cmd, cfg, threshold, maxWords, workers, noSpeaker)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := checkDeps(cfg); err != nil {
				return err
			}

			runner, closeCache, err := ctx.newRunner()
			if err != nil {
				return err
			}
			if closeCache != nil {
				defer func() { _ = closeCache() }()
			}

			result, err := runner.Run(cmd.Context(), pipeline.Request{
				MediaPath:  args[0],
				ScriptPath: scriptPath,
				OutputPath: outputPath,
			})
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Script text file to align against")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination .srt path")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Whisper model tier (tiny, base, small, medium, large)")
	cmd.Flags().StringVarP(&languageHint, "language", "l", "", "Spoken language hint")
	cmd.Flags().BoolVar(&noScript, "no-script", false, "Skip script matching and emit the raw transcription")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity before a chunk is claimed")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Upper bound on words per chunk")
	cmd.Flags().IntVar(&workers, "workers", 0, "Segments scored concurrently per batch")
	cmd.Flags().BoolVar(&noSpeaker, "no-speaker", false, "Omit speaker names from subtitle text")
	return cmd
}

// applyAlignmentFlags copies explicitly set alignment flags over the loaded
// configuration. Unset flags leave the file values alone.
func applyAlignmentFlags(cmd *cobra.Command, cfg *config.Config, threshold float64, maxWords, workers int, noSpeaker bool) {
	if cmd.Flags().Changed("threshold") {
		cfg.Alignment.SimilarityThreshold = threshold
	}
	if cmd.Flags().Changed("max-words") {
		cfg.Alignment.MaxWordsPerChunk = maxWords
	}
	if cmd.Flags().Changed("workers") {
		cfg.Alignment.Workers = workers
	}
	if noSpeaker {
		cfg.Alignment.IncludeSpeaker = false
	}
}

// checkDeps fails fast when a required external tool is unavailable, before
// any work starts.
func checkDeps(cfg *config.Config) error {
	missing := deps.MissingRequired(deps.Check(cfg))
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("required tools missing: %s (see `scriptsync deps`)", strings.Join(missing, ", "))
}

func printResult(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", result.OutputPath)

	rows := [][]string{
		{"Segments", fmt.Sprintf("%d", result.Segments)},
		{"Cues", fmt.Sprintf("%d", result.Cues)},
		{"Cache hit", yesNo(result.CacheHit)},
		{"Elapsed", result.Elapsed.Round(10 * time.Millisecond).String()},
	}
	if result.Passthrough {
		rows = append(rows, []string{"Mode", "passthrough"})
	} else {
		rows = append(rows,
			[]string{"Mode", "script"},
			[]string{"Dialog lines", fmt.Sprintf("%d", result.DialogLines)},
			[]string{"Chunks", fmt.Sprintf("%d", result.Chunks)},
			[]string{"Matched", fmt.Sprintf("%d", result.Matched)},
			[]string{"Fallbacks", fmt.Sprintf("%d", result.Fallbacks)},
			[]string{"Dropped segments", fmt.Sprintf("%d", result.Dropped)},
			[]string{"Scores >= 0.8", fmt.Sprintf("%d", result.Scores.High)},
			[]string{"Scores 0.5-0.8", fmt.Sprintf("%d", result.Scores.Medium)},
			[]string{"Scores < 0.5", fmt.Sprintf("%d", result.Scores.Low)},
		)
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
