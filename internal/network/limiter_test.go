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
package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_every(t *testing.T) {
	tests := []struct {
		name  string
		tier  Tier
		boost int
		want  time.Duration
	}{
		{"tier2", Tier2, 0, 3 * time.Second},
		{"tier3", Tier3, 0, 1200 * time.Millisecond},
		{"tier3 boosted", Tier3, 70, 500 * time.Millisecond},
		{"no tier", NoTier, 0, 10 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, every(tt.tier, tt.boost))
		})
	}
}

func TestPacer(t *testing.T) {
	t.Run("zero delay is unlimited", func(t *testing.T) {
		l := Pacer(0)
		assert.Equal(t, rate.Inf, l.Limit())
	})
	t.Run("delay sets the rate", func(t *testing.T) {
		l := Pacer(500 * time.Millisecond)
		assert.Equal(t, rate.Every(500*time.Millisecond), l.Limit())
		assert.Equal(t, 1, l.Burst())
	})
}
