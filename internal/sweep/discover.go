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
	"strings"

	"github.com/rusq/slack"
)

// ErrNotFound is returned by FindChannel when the full listing contains no
// channel with the requested name.
var ErrNotFound = errors.New("channel not found")

// pageSz is the number of channels per conversations.list page, the value
// recommended by Slack.
const pageSz = 200

// FindChannel scans the public channel listing for a channel with the given
// name (case-insensitive) and returns its ID.  The scan stops at the first
// match.  Running out of pages is a normal ErrNotFound outcome; any API
// failure aborts the scan.
func (s *Sweeper) FindChannel(ctx context.Context, name string) (string, error) {
	params := &slack.GetConversationsParameters{
		Types: []string{"public_channel"},
		Limit: pageSz,
	}
	for {
		if err := s.pager.Wait(ctx); err != nil {
			return "", err
		}
		chans, next, err := s.cl.GetConversationsContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("error listing channels: %w", err)
		}
		for _, ch := range chans {
			if strings.EqualFold(ch.Name, name) {
				s.lg.Info("channel found", "name", ch.Name, "id", ch.ID)
				return ch.ID, nil
			}
		}
		if next == "" {
			s.lg.Error("channel not found after checking all pages", "name", name)
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		params.Cursor = next
	}
}
