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

// Package roster loads the workspace channel export and filters it down to
// the channels that are eligible for cleanup.
package roster

import (
	"log/slog"
	"time"
)

// Channel is one row of the channel export that survived every exclusion
// rule.  Channels are immutable once created.
type Channel struct {
	Name         string    // channel name, without the leading #
	ID           string    // channel ID; may be empty if the export omits it
	Members      int       // member count at export time
	LastActivity time.Time // timestamp of the last message
	DaysInactive int       // whole days between the load time and LastActivity
}

// Stats is the tally of one load pass over the export.  Each excluded row
// increments exactly one counter.
type Stats struct {
	Total          int // rows read, excluding the header
	Private        int // excluded: private channels
	Archived       int // excluded: already archived
	Protected      int // excluded: name on the protect-list
	TooManyMembers int // excluded: more members than the policy allows
	RecentlyActive int // excluded: activity on or after the cutoff
	ParseErrors    int // excluded: row failed to parse
}

// Eligible returns the number of rows that passed the filter.
func (s Stats) Eligible() int {
	return s.Total - s.Private - s.Archived - s.Protected - s.TooManyMembers -
		s.RecentlyActive - s.ParseErrors
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("total", s.Total),
		slog.Int("skipped_private", s.Private),
		slog.Int("skipped_archived", s.Archived),
		slog.Int("skipped_protected", s.Protected),
		slog.Int("skipped_members", s.TooManyMembers),
		slog.Int("skipped_active", s.RecentlyActive),
		slog.Int("parse_errors", s.ParseErrors),
	)
}
