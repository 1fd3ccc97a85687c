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
	"fmt"
	"strings"
	"time"

	"github.com/rusq/slack"

	"github.com/rusq/chansweep/internal/policy"
	"github.com/rusq/chansweep/internal/roster"
)

const (
	// maxListed is the number of channels enumerated in the notice; the
	// remainder is summarised in a single line.
	maxListed = 50
	// the notice announces archival in archiveDays and asks to opt out a
	// day earlier.
	archiveDays = 3
	optOutDays  = 2
)

// Notify posts the cleanup notice for the batch to the policy's
// notification channel.  The send is all-or-nothing: if the destination
// cannot be resolved, or the message fails to post, the whole action fails
// and nothing is retried.
func (s *Sweeper) Notify(ctx context.Context, batch []roster.Channel) error {
	channelID, err := s.FindChannel(ctx, s.pol.Channel)
	if err != nil {
		return fmt.Errorf("unable to resolve the notification channel %q: %w", s.pol.Channel, err)
	}

	text := composeNotice(batch, s.pol, s.now())
	_, ts, err := s.cl.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("failed to post the notification: %w", err)
	}
	s.lg.Info("notification posted", "channel", s.pol.Channel, "ts", ts)
	return nil
}

// composeNotice renders the notice message: the preamble with the
// eligibility rules, up to maxListed enumerated channels, the truncation
// line if the batch is longer, and the opt-out instructions.
func composeNotice(batch []roster.Channel, pol policy.Policy, now time.Time) string {
	archiveDate := now.AddDate(0, 0, archiveDays).Format("January 02, 2006")
	optOutDate := now.AddDate(0, 0, optOutDays).Format("January 02")

	var b strings.Builder
	b.WriteString("SLACK WORKSPACE CLEANUP - 3 DAY NOTICE\n\n")
	fmt.Fprintf(&b, "The following %d channels will be archived on %s.\n\n", len(batch), archiveDate)
	b.WriteString("Channels meet both criteria:\n")
	fmt.Fprintf(&b, "- %d or fewer members\n", pol.MaxMembers)
	fmt.Fprintf(&b, "- No activity since %s\n\n", pol.Cutoff.Format("January 02, 2006"))
	b.WriteString("Channels scheduled for archival:\n")

	for i, ch := range batch {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "%d. #%s (%d members, last active: %s)\n",
			i+1, ch.Name, ch.Members, ch.LastActivity.Format("Jan 02, 2006"))
	}
	if len(batch) > maxListed {
		fmt.Fprintf(&b, "\n... and %d more channels\n", len(batch)-maxListed)
	}

	fmt.Fprintf(&b, "\nTO OPT-OUT:\nContact ITOps with the channel name by %s\n\n", optOutDate)
	b.WriteString("Note: Channels will be archived (not deleted). All content remains accessible and can be unarchived if needed.\n")
	return b.String()
}
