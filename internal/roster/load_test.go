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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/chansweep/internal/policy"
)

const header = "Name,ID,Members,Last activity,Private,Archived\n"

var testNow = time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

// row builds an export row with sensible defaults for an eligible channel.
func row(name string, overrides map[string]string) string {
	vals := map[string]string{
		"Name":          name,
		"ID":            "C" + strings.ToUpper(name),
		"Members":       "1",
		"Last activity": "Sun, 01 Jun 2025 10:30:00 -0700",
		"Private":       "false",
		"Archived":      "false",
	}
	for k, v := range overrides {
		vals[k] = v
	}
	fields := []string{
		vals["Name"], vals["ID"], vals["Members"], vals["Last activity"],
		vals["Private"], vals["Archived"],
	}
	for i, v := range fields {
		if strings.Contains(v, ",") {
			fields[i] = `"` + v + `"`
		}
	}
	return strings.Join(fields, ",") + "\n"
}

func load(t *testing.T, contents string) ([]Channel, Stats) {
	t.Helper()
	name := filepath.Join(t.TempDir(), "channels.csv")
	require.NoError(t, os.WriteFile(name, []byte(contents), 0o644))
	return Load(name, policy.Default(), testNow)
}

func names(cc []Channel) []string {
	nn := make([]string, len(cc))
	for i := range cc {
		nn[i] = cc[i].Name
	}
	return nn
}

func TestLoad_exclusions(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		wantStats Stats
	}{
		{
			"private is excluded whatever the other fields",
			header + row("skunkworks", map[string]string{"Private": "TRUE"}),
			Stats{Total: 1, Private: 1},
		},
		{
			"archived is excluded",
			header + row("defunct", map[string]string{"Archived": "true"}),
			Stats{Total: 1, Archived: 1},
		},
		{
			"protected name, case-insensitive",
			header + row("General", nil),
			Stats{Total: 1, Protected: 1},
		},
		{
			"too many members",
			header + row("busy", map[string]string{"Members": "5"}),
			Stats{Total: 1, TooManyMembers: 1},
		},
		{
			"active on the cutoff instant is excluded (half-open)",
			header + row("edge", map[string]string{"Last activity": "Wed, 02 Jul 2025 00:00:00 -0700"}),
			Stats{Total: 1, RecentlyActive: 1},
		},
		{
			"active after the cutoff is excluded",
			header + row("chatty", map[string]string{"Last activity": "Fri, 15 Aug 2025 09:00:00 -0700"}),
			Stats{Total: 1, RecentlyActive: 1},
		},
		{
			"one second before the cutoff is eligible",
			header + row("quiet", map[string]string{"Last activity": "Tue, 01 Jul 2025 23:59:59 -0700"}),
			Stats{Total: 1},
		},
		{
			"private wins over archived",
			header + row("both", map[string]string{"Private": "true", "Archived": "true"}),
			Stats{Total: 1, Private: 1},
		},
		{
			"unparseable member count",
			header + row("wat", map[string]string{"Members": "lots"}),
			Stats{Total: 1, ParseErrors: 1},
		},
		{
			"unparseable member count beats the private flag",
			header + row("wat", map[string]string{"Members": "lots", "Private": "true"}),
			Stats{Total: 1, ParseErrors: 1},
		},
		{
			"empty member count is zero",
			header + row("empty", map[string]string{"Members": ""}),
			Stats{Total: 1},
		},
		{
			"unparseable timestamp",
			header + row("zombie", map[string]string{"Last activity": "yesterday"}),
			Stats{Total: 1, ParseErrors: 1},
		},
		{
			"parse error does not stop the pass",
			header +
				row("bad", map[string]string{"Members": "NaN"}) +
				row("good", nil),
			Stats{Total: 2, ParseErrors: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, stats := load(t, tt.csv)
			assert.Equal(t, tt.wantStats, stats)
			assert.Len(t, cc, stats.Eligible())
		})
	}
}

func TestLoad_ordering(t *testing.T) {
	// ascending by member count, most-inactive first within the same count.
	csv := header +
		row("a3", map[string]string{"Members": "3"}) +
		row("b0", map[string]string{"Members": "0"}) +
		row("c3-older", map[string]string{"Members": "3", "Last activity": "Sat, 01 Mar 2025 10:30:00 -0700"}) +
		row("d1", map[string]string{"Members": "1"})
	cc, stats := load(t, csv)
	require.Equal(t, 4, stats.Eligible())
	assert.Equal(t, []string{"b0", "d1", "c3-older", "a3"}, names(cc))
}

func TestLoad_endToEnd(t *testing.T) {
	csv := header +
		row("A", map[string]string{"Members": "3", "Last activity": "Sun, 01 Jun 2025 10:30:00 -0700"}) +
		row("B", map[string]string{"Members": "0", "Last activity": "Tue, 01 Apr 2025 10:30:00 -0700"}) +
		row("C", map[string]string{"Members": "5", "Last activity": "Sun, 01 Jun 2025 10:30:00 -0700"}) +
		row("general", map[string]string{"Members": "1", "Last activity": "Sun, 01 Jun 2025 10:30:00 -0700"})
	cc, stats := load(t, csv)
	assert.Equal(t, []string{"B", "A"}, names(cc))
	assert.Equal(t, Stats{Total: 4, Protected: 1, TooManyMembers: 1}, stats)
}

func TestLoad_fields(t *testing.T) {
	cc, _ := load(t, header+row("lonely", map[string]string{
		"ID":            "C12345678",
		"Members":       "2",
		"Last activity": "Sun, 01 Jun 2025 10:30:00 -0700",
	}))
	require.Len(t, cc, 1)
	got := cc[0]
	assert.Equal(t, "lonely", got.Name)
	assert.Equal(t, "C12345678", got.ID)
	assert.Equal(t, 2, got.Members)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), got.LastActivity)
	assert.Equal(t, 88, got.DaysInactive)
}

func TestLoad_missingFile(t *testing.T) {
	cc, stats := Load(filepath.Join(t.TempDir(), "nope.csv"), policy.Default(), testNow)
	assert.Empty(t, cc)
	assert.Equal(t, Stats{}, stats)
}

func TestLoad_shortRow(t *testing.T) {
	cc, stats := load(t, header+"stub,C123\n"+row("fine", nil))
	assert.Equal(t, []string{"fine"}, names(cc))
	assert.Equal(t, Stats{Total: 2, ParseErrors: 1}, stats)
}

func TestParseActivity(t *testing.T) {
	t.Run("offset is stripped, not applied", func(t *testing.T) {
		got, err := parseActivity("Sun, 01 Jun 2025 10:30:00 -0700")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), got)
	})
	t.Run("no offset suffix", func(t *testing.T) {
		got, err := parseActivity("Sun, 01 Jun 2025 10:30:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), got)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := parseActivity("last tuesday")
		assert.Error(t, err)
	})
}
