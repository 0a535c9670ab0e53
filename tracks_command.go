package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/layout"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var input inputFlags
	var stripBrackets bool

	cmd := &cobra.Command{
		Use:   "tracks [discogs-url...]",
		Short: "Preview parsed discs and track order",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			refs, inline, err := input.collectRefs(args)
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
			discs, warnings, err := gen.Discs(cmd.Context(), refs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Disc", "Pos", "Seq", "Label", "Album", "Artist"},
				trackRows(discs, layout.Options{StripBracketedText: stripBrackets}),
				[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
				useRoundedTable(out),
			))
			msgs := make([]string, 0, len(warnings))
			for _, w := range warnings {
				msgs = append(msgs, w.String())
			}
			if len(discs) > layout.StripsPerPage {
				msgs = append(msgs, fmt.Sprintf("%d discs found; only the first %d fit on the page", len(discs), layout.StripsPerPage))
			}
			printWarnings(out, msgs)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&stripBrackets, "strip-brackets", true, "Remove (...) from previewed labels")
	return cmd
}

// trackRows 每条曲目一行，Label 列与标签条上打印的文本一致。
func trackRows(discs []catalog.Disc, opts layout.Options) [][]string {
	var rows [][]string
	for i, disc := range discs {
		for _, tr := range disc.Tracks {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(disc.DiscNumber),
				tr.Position,
				strconv.Itoa(tr.OverallSequence),
				layout.TrackLabel(tr.TrackNumber, tr.Title, opts),
				layout.AlbumLabel(disc.AlbumTitle, opts),
				layout.ArtistLabel(disc.ArtistName),
			})
		}
	}
	return rows
}
