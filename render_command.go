package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jukestrip/config"
	"github.com/ByLCY/jukestrip/labels"
	"github.com/ByLCY/jukestrip/layout"
)

type renderFlags struct {
	input     inputFlags
	output    string
	debugJSON string

	alternate       bool
	titleBackground bool
	ruler           bool
	stripBrackets   bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [discogs-url...]",
		Short: "Look up discs and render label strips to PDF",
		Long: "Looks up Discogs release/master URLs, listing files and MP3 directories in order\n" +
			"and lays out up to four 74x109 mm strips on one A4 page.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			refs, inline, err := flags.input.collectRefs(args)
			if err != nil {
				return err
			}
			set, err := ctx.newSource(refs, inline, logger)
			if err != nil {
				return err
			}
			defer set.close()

			gen, err := ctx.newGenerator(set, logger)
			if err != nil {
				return err
			}

			res, err := gen.Generate(cmd.Context(), labels.Request{Refs: refs, Options: layoutOptions(cmd, cfg.Layout, &flags)})
			if err != nil {
				return fmt.Errorf("generate labels: %w", err)
			}

			debugPath := flags.debugJSON
			if !cmd.Flags().Changed("debug-json") {
				debugPath = cfg.Output.DebugJSON
			}
			if debugPath != "" {
				if err := layout.WriteDebugJSON(res.Layout, debugPath); err != nil {
					return fmt.Errorf("write debug json: %w", err)
				}
			}

			output := flags.output
			if !cmd.Flags().Changed("out") {
				output = cfg.Output.Path
			}
			path, err := res.WriteFile(output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printWarnings(out, res.Warnings())
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Wrote %s (%d strips)", path, placedStrips(res.Layout))))
			return nil
		},
	}

	flags.input.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "out", "o", "", "PDF output path; may use ${album}, ${artist}, ${discs}")
	cmd.Flags().StringVar(&flags.debugJSON, "debug-json", "", "Write the layout as debug JSON to this path")
	cmd.Flags().BoolVar(&flags.alternate, "alternate-backgrounds", false, "Shade alternate track rows")
	cmd.Flags().BoolVar(&flags.titleBackground, "title-background", false, "Draw a background behind album and artist")
	cmd.Flags().BoolVar(&flags.ruler, "ruler", false, "Print a 74 mm calibration ruler")
	cmd.Flags().BoolVar(&flags.stripBrackets, "strip-brackets", true, "Remove (...) from album, artist and track labels")
	return cmd
}

// layoutOptions 以配置为默认值，命令行显式给出的开关优先。
func layoutOptions(cmd *cobra.Command, defaults config.Layout, flags *renderFlags) layout.Options {
	opts := layout.Options{
		AlternateRowBackgrounds: defaults.AlternateBackgrounds,
		ShowTitleBackground:     defaults.TitleBackground,
		StripBracketedText:      defaults.StripBrackets,
		ShowRuler:               defaults.Ruler,
	}
	if cmd.Flags().Changed("alternate-backgrounds") {
		opts.AlternateRowBackgrounds = flags.alternate
	}
	if cmd.Flags().Changed("title-background") {
		opts.ShowTitleBackground = flags.titleBackground
	}
	if cmd.Flags().Changed("strip-brackets") {
		opts.StripBracketedText = flags.stripBrackets
	}
	if cmd.Flags().Changed("ruler") {
		opts.ShowRuler = flags.ruler
	}
	return opts
}

func placedStrips(res *layout.Result) int {
	n := 0
	if res == nil {
		return n
	}
	for _, p := range res.Pages {
		n += len(p.Strips)
	}
	return n
}
