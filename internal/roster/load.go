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
package roster

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rusq/chansweep/internal/policy"
)

// TimeLayout is the "Last activity" column format of the workspace export.
// The trailing UTC offset (i.e. " -0700") is stripped before parsing and
// discarded, it is not applied to the timestamp.
const TimeLayout = "Mon, 02 Jan 2006 15:04:05"

// export column headers.
const (
	colName     = "Name"
	colID       = "ID"
	colMembers  = "Members"
	colActivity = "Last activity"
	colPrivate  = "Private"
	colArchived = "Archived"
)

// Load reads the channel export from path and returns the channels that are
// eligible for cleanup under the policy, sorted by ascending member count,
// ties broken by the longest-inactive first.  now is the observation time
// used to compute Channel.DaysInactive.
//
// Malformed rows are counted and skipped, they never abort the pass.  An
// unreadable file is reported and yields an empty result, not an error: the
// caller sees it as "nothing to do".
func Load(path string, pol policy.Policy, now time.Time) ([]Channel, Stats) {
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		slog.Error("unable to open the channel export", "path", path, "error", err)
		return nil, stats
	}
	defer f.Close()

	channels, stats := readAll(f, pol, now)

	slices.SortStableFunc(channels, func(a, b Channel) int {
		if c := cmp.Compare(a.Members, b.Members); c != 0 {
			return c
		}
		return cmp.Compare(b.DaysInactive, a.DaysInactive)
	})

	slog.Info("channel export processed", "path", path, "stats", stats, "eligible", len(channels))
	return channels, stats
}

// readAll does one pass over the export, applying the exclusion rules to
// each row.
func readAll(r io.Reader, pol policy.Policy, now time.Time) ([]Channel, Stats) {
	var stats Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row

	hdr, err := cr.Read()
	if err != nil {
		slog.Error("unable to read the export header", "error", err)
		return nil, stats
	}
	cols := index(hdr)

	var channels []Channel
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Total++
			stats.ParseErrors++
			slog.Warn("row is not valid CSV", "row", rowNum, "error", err)
			continue
		}
		stats.Total++

		ch, verdict, err := filterRow(cols, row, pol, now)
		if err != nil {
			stats.ParseErrors++
			slog.Warn("parse error", "row", rowNum, "error", err, "data", row)
			continue
		}
		switch verdict {
		case vOK:
			channels = append(channels, ch)
		case vPrivate:
			stats.Private++
			slog.Debug("skipping private channel", "row", rowNum, "name", ch.Name)
		case vArchived:
			stats.Archived++
			slog.Debug("skipping archived channel", "row", rowNum, "name", ch.Name)
		case vProtected:
			stats.Protected++
			slog.Debug("skipping protected channel", "row", rowNum, "name", ch.Name)
		case vTooManyMembers:
			stats.TooManyMembers++
			slog.Debug("skipping channel, too many members", "row", rowNum, "name", ch.Name, "members", ch.Members)
		case vRecentlyActive:
			stats.RecentlyActive++
			slog.Debug("skipping channel, recent activity", "row", rowNum, "name", ch.Name, "last_activity", ch.LastActivity)
		}
	}
	return channels, stats
}

type verdict uint8

// exclusion rules in the order they are applied; first match wins.
const (
	vOK verdict = iota
	vPrivate
	vArchived
	vProtected
	vTooManyMembers
	vRecentlyActive
)

// filterRow parses one row and applies the exclusion rules.  A non-nil
// error means the row could not be parsed and counts as a parse error,
// whatever the other fields say.
func filterRow(cols map[string]int, row []string, pol policy.Policy, now time.Time) (Channel, verdict, error) {
	name, err := field(cols, row, colName)
	if err != nil {
		return Channel{}, vOK, err
	}
	members, err := parseMembers(cols, row)
	if err != nil {
		return Channel{}, vOK, err
	}
	activity, err := field(cols, row, colActivity)
	if err != nil {
		return Channel{}, vOK, err
	}
	ch := Channel{Name: name, Members: members}
	ch.ID, _ = field(cols, row, colID) // optional

	if isTrue(optional(cols, row, colPrivate)) {
		return ch, vPrivate, nil
	}
	if isTrue(optional(cols, row, colArchived)) {
		return ch, vArchived, nil
	}
	if pol.IsProtected(name) {
		return ch, vProtected, nil
	}
	if members > pol.MaxMembers {
		return ch, vTooManyMembers, nil
	}

	// the timestamp is parsed only after the preceding rules have passed:
	// a bad timestamp on a row that is excluded anyway is not a parse error.
	lastActivity, err := parseActivity(activity)
	if err != nil {
		return ch, vOK, err
	}
	ch.LastActivity = lastActivity
	if !lastActivity.Before(pol.Cutoff) { // half-open: on/after the cutoff is active
		return ch, vRecentlyActive, nil
	}

	ch.DaysInactive = int(now.Sub(lastActivity).Hours() / 24)
	return ch, vOK, nil
}

// parseActivity parses the "Last activity" value, stripping the trailing
// UTC offset.
func parseActivity(s string) (time.Time, error) {
	s, _, _ = strings.Cut(s, " -")
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func parseMembers(cols map[string]int, row []string) (int, error) {
	s, err := field(cols, row, colMembers)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative member count: %d", n)
	}
	return n, nil
}

func index(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, h := range hdr {
		m[strings.TrimSpace(h)] = i
	}
	return m
}

// field returns the named column of the row, or an error if the column is
// absent from the header or the row is too short.
func field(cols map[string]int, row []string, name string) (string, error) {
	i, ok := cols[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if i >= len(row) {
		return "", fmt.Errorf("row too short, no %q value", name)
	}
	return row[i], nil
}

// optional is like field, but a missing value is an empty string.
func optional(cols map[string]int, row []string, name string) string {
	s, _ := field(cols, row, name)
	return s
}

func isTrue(s string) bool {
	return strings.EqualFold(s, "true")
}
