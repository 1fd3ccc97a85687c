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
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/rusq/chansweep/internal/client/mock_client"
	"github.com/rusq/chansweep/internal/network"
	"github.com/rusq/chansweep/internal/policy"
)

var testNow = time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

// testPolicy is the default policy with pacing disabled.
func testPolicy() policy.Policy {
	p := policy.Default()
	p.Delay = 0
	return p
}

// testSweeper returns a sweeper over a mock client with all pacing
// disabled and a pinned clock.
func testSweeper(t *testing.T, pol policy.Policy) (*Sweeper, *mock_client.MockSlack) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mcl := mock_client.NewMockSlack(ctrl)
	s := New(mcl, pol, WithOutput(io.Discard))
	s.pager = network.Pacer(0)
	s.now = func() time.Time { return testNow }
	return s, mcl
}
