package main

import (
	"github.com/spf13/cobra"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var threshold float64
	var maxWords int
	var workers int
	var noSpeaker bool

	cmd := &cobra.Command{
		Use:   "align <transcript-file> <script-file>",
		Short: "Align an existing transcript against a script",
		Long:  "Reads a transcript (whisper .json or .srt) and a script, and writes subtitles carrying the script's wording on the transcript's timing. No external tools run.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyAlignmentFlags(cmd, cfg, threshold, maxWords, workers, noSpeaker)
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, closeCache, err := ctx.newRunner()
			if err != nil {
				return err
			}
			if closeCache != nil {
				defer func() { _ = closeCache() }()
			}

			result, err := runner.AlignTranscript(cmd.Context(), args[0], args[1], outputPath)
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination .srt path")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity before a chunk is claimed")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Upper bound on words per chunk")
	cmd.Flags().IntVar(&workers, "workers", 0, "Segments scored concurrently per batch")
	cmd.Flags().BoolVar(&noSpeaker, "no-speaker", false, "Omit speaker names from subtitle text")
	return cmd
}
