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
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rusq/slack"

	"github.com/rusq/chansweep/internal/roster"
)

// Stats is the tally of one archival run.
type Stats struct {
	Processed  int // records visited
	Successful int // archived, or would be archived in a dry run
	Failed     int // verify or archive call failed
	Skipped    int // remote state was already archived
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("processed", s.Processed),
		slog.Int("successful", s.Successful),
		slog.Int("failed", s.Failed),
		slog.Int("skipped", s.Skipped),
	)
}

// Status is the outcome of one archival record.
type Status uint8

const (
	StatusArchived Status = iota
	StatusWouldArchive
	StatusSkipped
	StatusFailed
)

// Result is the outcome of processing a single channel of the batch.
type Result struct {
	Channel roster.Channel
	Status  Status
	Err     error
}

func (r Result) String() string {
	desc := fmt.Sprintf("#%s (%s)", r.Channel.Name, r.Channel.ID)
	switch r.Status {
	case StatusArchived:
		return "Archived: " + desc
	case StatusWouldArchive:
		return "[DRY RUN] Would archive: " + desc
	case StatusSkipped:
		return "Already archived: " + desc
	case StatusFailed:
		return fmt.Sprintf("Failed: %s: %s", desc, r.Err)
	default:
		return desc
	}
}

func (s *Sweeper) printResult(r Result) {
	fmt.Fprintln(s.out, r)
}

// Archive runs the verify-then-archive loop over the batch.  With live set
// to false it is a dry run: every verification is performed, the archive
// call is not.  Each record is classified exactly once; a failing record
// never stops the loop.  Returns the aggregate statistics for the run.
func (s *Sweeper) Archive(ctx context.Context, batch []roster.Channel, live bool) Stats {
	var st Stats

	mode := "DRY RUN"
	if live {
		mode = "LIVE"
	}
	s.lg.Info("starting archival", "mode", mode, "channels", len(batch))

	for _, ch := range batch {
		// client-side pacing against the API rate limits; carries no
		// correctness guarantee.
		if err := s.pacer.Wait(ctx); err != nil {
			s.lg.Warn("archival interrupted", "error", err)
			break
		}
		st.Processed++
		s.resultFn(s.archiveOne(ctx, &st, ch, live))
	}

	s.lg.Info("archival complete", "mode", mode, "stats", st)
	return st
}

// archiveOne verifies the current remote state of the channel and, in live
// mode, issues the archive call.  It updates exactly one outcome counter of
// st (plus Processed, which the caller owns).
func (s *Sweeper) archiveOne(ctx context.Context, st *Stats, ch roster.Channel, live bool) Result {
	lg := s.lg.With("channel", "#"+ch.Name, "id", ch.ID)

	info, err := s.cl.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID:         ch.ID,
		IncludeNumMembers: true,
	})
	if err != nil {
		return s.classify(st, ch, lg, err)
	}
	if info.IsArchived {
		st.Skipped++
		lg.Info("already archived, skipping")
		return Result{Channel: ch, Status: StatusSkipped}
	}
	if info.NumMembers != ch.Members {
		// drift between the export and the current state is log-only, it
		// does not requalify the channel.
		lg.Warn("member count changed", "was", ch.Members, "now", info.NumMembers)
	}

	if !live {
		st.Successful++
		lg.Info("would archive (dry run)")
		return Result{Channel: ch, Status: StatusWouldArchive}
	}
	if err := s.cl.ArchiveConversationContext(ctx, ch.ID); err != nil {
		return s.classify(st, ch, lg, err)
	}
	st.Successful++
	lg.Info("archived")
	return Result{Channel: ch, Status: StatusArchived}
}

// classify converts a verify or archive call error into a counter update
// and a log entry.  An "already_archived" API error means the remote state
// is what the run wanted anyway, and is reclassified as skipped.
func (s *Sweeper) classify(st *Stats, ch roster.Channel, lg *slog.Logger, err error) Result {
	st.Failed++

	var ser slack.SlackErrorResponse
	if !errors.As(err, &ser) {
		lg.Error("unexpected error", "error", err)
		return Result{Channel: ch, Status: StatusFailed, Err: err}
	}
	switch code := ser.Err; {
	case strings.EqualFold(code, "channel_not_found"):
		lg.Warn("channel not found")
	case strings.EqualFold(code, "already_archived"):
		st.Failed--
		st.Skipped++
		lg.Info("already archived")
		return Result{Channel: ch, Status: StatusSkipped}
	case strings.EqualFold(code, "cant_archive_general"):
		lg.Error("cannot archive the general channel")
	case strings.EqualFold(code, "restricted_action"):
		lg.Error("insufficient permissions")
	default:
		lg.Error("archive failed", "code", code)
	}
	return Result{Channel: ch, Status: StatusFailed, Err: err}
}
