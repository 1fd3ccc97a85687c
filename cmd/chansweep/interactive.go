// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/rusq/chansweep/cmd/chansweep/internal/bootstrap"
	"github.com/rusq/chansweep/cmd/chansweep/internal/ui"
	"github.com/rusq/chansweep/internal/client"
	"github.com/rusq/chansweep/internal/policy"
	"github.com/rusq/chansweep/internal/roster"
	"github.com/rusq/chansweep/internal/sweep"
)

// confirmPhrase must be typed verbatim before the live archive is allowed
// to run.
const confirmPhrase = "ARCHIVE"

const (
	mShow    = "show"
	mNotify  = "notify"
	mDryRun  = "dryrun"
	mArchive = "archive"
	mExit    = "exit"
)

// interactive runs the main menu loop until the operator exits or an
// operation fails.
func interactive(ctx context.Context, cl client.Slack, pol policy.Policy, batch []roster.Channel) error {
	lg := slog.Default()
	for {
		choice, err := menu(ctx, len(batch))
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		switch choice {
		case mShow:
			printBatch(os.Stdout, batch)
		case mNotify:
			fmt.Printf("Posting the cleanup notice for %d channels to #%s...\n", len(batch), pol.Channel)
			sw := sweep.New(cl, pol, sweep.WithLogger(lg))
			if err := sw.Notify(ctx, batch); err != nil {
				return fmt.Errorf("notification: %w", err)
			}
			color.Green("Notification posted.")
		case mDryRun:
			if err := archive(ctx, cl, pol, lg, batch, false); err != nil {
				return err
			}
		case mArchive:
			ok, err := ui.ConfirmPhrase(
				fmt.Sprintf("This will archive %d channels.  Type %q to confirm.", len(batch), confirmPhrase),
				confirmPhrase,
			)
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				return err
			}
			if !ok {
				fmt.Println("Archive cancelled.")
				continue
			}
			if err := archive(ctx, cl, pol, lg, batch, true); err != nil {
				return err
			}
		case mExit, "":
			return nil
		}
	}
}

func menu(ctx context.Context, n int) (string, error) {
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Cleanup batch of %d channels", n)).
			Options(
				huh.NewOption("Show the batch", mShow),
				huh.NewOption("Post the 3-day notification", mNotify),
				huh.NewOption("Dry run (verify, no changes)", mDryRun),
				huh.NewOption("Archive the channels", mArchive),
				huh.NewOption(ui.MenuSeparator, ""),
				huh.NewOption("Exit", mExit),
			).
			Value(&choice).
			WithTheme(ui.HuhTheme),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return choice, nil
}

// archive runs the verification pass over the batch, mutating the
// workspace only when live is true.  Individual channel failures are
// reported and counted, they do not terminate the batch.
func archive(ctx context.Context, cl client.Slack, pol policy.Policy, lg *slog.Logger, batch []roster.Channel, live bool) error {
	descr := "Dry run"
	if live {
		descr = "Archiving"
	}
	pb := bootstrap.ProgressBar(ctx, lg, len(batch),
		progressbar.OptionSetDescription(descr))

	var results []sweep.Result
	sw := sweep.New(cl, pol,
		sweep.WithLogger(lg),
		sweep.WithResultFn(func(r sweep.Result) {
			_ = pb.Add(1)
			results = append(results, r)
		}),
	)
	st := sw.Archive(ctx, batch, live)
	_ = pb.Finish()

	for _, r := range results {
		switch r.Status {
		case sweep.StatusFailed:
			color.Red("%s", r)
		case sweep.StatusSkipped:
			color.Yellow("%s", r)
		default:
			if !live {
				fmt.Println(r)
			}
		}
	}
	printSummary(os.Stdout, live, st)
	return nil
}

func printSummary(w io.Writer, live bool, st sweep.Stats) {
	title, archived := "Dry run complete", "Would archive"
	if live {
		title, archived = "Archive complete", "Archived"
	}
	color.New(color.Bold).Fprintf(w, "\n%s:\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  Processed:\t%d\n", st.Processed)
	fmt.Fprintf(tw, "  %s:\t%d\n", archived, st.Successful)
	fmt.Fprintf(tw, "  Skipped:\t%d\n", st.Skipped)
	fmt.Fprintf(tw, "  Failed:\t%d\n", st.Failed)
	tw.Flush()
}

// printBatch prints the batch in the order the operations will process
// it, least members first.
func printBatch(w io.Writer, batch []roster.Channel) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCHANNEL\tID\tMEMBERS\tLAST ACTIVITY\tINACTIVE")
	for i, ch := range batch {
		fmt.Fprintf(tw, "%d\t#%s\t%s\t%d\t%s\t%s\n",
			i+1, ch.Name, ch.ID, ch.Members,
			ch.LastActivity.Format("2006-01-02"),
			humanize.Time(ch.LastActivity),
		)
	}
	tw.Flush()
}
