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
	"errors"
	"testing"
	"time"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/rusq/chansweep/internal/client/mock_client"
	"github.com/rusq/chansweep/internal/roster"
)

// remote builds the conversations.info response for a channel.
func remote(id, name string, members int, archived bool) *slack.Channel {
	ch := channel(id, name)
	ch.NumMembers = members
	ch.IsArchived = archived
	return &ch
}

func record(id, name string, members int) roster.Channel {
	return roster.Channel{
		Name:         name,
		ID:           id,
		Members:      members,
		LastActivity: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		DaysInactive: 88,
	}
}

func infoFor(id string) gomock.Matcher {
	return gomock.Cond(func(input *slack.GetConversationInfoInput) bool {
		return input != nil && input.ChannelID == id && input.IncludeNumMembers
	})
}

func TestSweeper_Archive(t *testing.T) {
	batch := []roster.Channel{record("C1", "one", 1), record("C2", "two", 2)}

	tests := []struct {
		name   string
		batch  []roster.Channel
		live   bool
		expect func(m *mock_client.MockSlack)
		want   Stats
	}{
		{
			"live run archives everything",
			batch,
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").Return(nil)
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C2")).Return(remote("C2", "two", 2, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C2").Return(nil)
			},
			Stats{Processed: 2, Successful: 2},
		},
		{
			"dry run verifies but never archives",
			batch,
			false,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C2")).Return(remote("C2", "two", 2, false), nil)
				// no ArchiveConversationContext expectations: any call fails the test.
			},
			Stats{Processed: 2, Successful: 2},
		},
		{
			"remotely archived is skipped without an archive call",
			batch,
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, true), nil)
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C2")).Return(remote("C2", "two", 2, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C2").Return(nil)
			},
			Stats{Processed: 2, Successful: 1, Skipped: 1},
		},
		{
			"already_archived on the archive call reclassifies to skipped",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").
					Return(slack.SlackErrorResponse{Err: "already_archived"})
			},
			Stats{Processed: 1, Skipped: 1},
		},
		{
			"channel_not_found on verify counts as failed",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).
					Return(nil, slack.SlackErrorResponse{Err: "channel_not_found"})
			},
			Stats{Processed: 1, Failed: 1},
		},
		{
			"cant_archive_general counts as failed",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "general", 1, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").
					Return(slack.SlackErrorResponse{Err: "cant_archive_general"})
			},
			Stats{Processed: 1, Failed: 1},
		},
		{
			"restricted_action counts as failed",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").
					Return(slack.SlackErrorResponse{Err: "restricted_action"})
			},
			Stats{Processed: 1, Failed: 1},
		},
		{
			"unknown api code counts as failed",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").
					Return(slack.SlackErrorResponse{Err: "method_deprecated"})
			},
			Stats{Processed: 1, Failed: 1},
		},
		{
			"non-api error counts as failed",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).
					Return(nil, errors.New("connection reset by peer"))
			},
			Stats{Processed: 1, Failed: 1},
		},
		{
			"a failed record does not stop the batch",
			batch,
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).
					Return(nil, slack.SlackErrorResponse{Err: "channel_not_found"})
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C2")).Return(remote("C2", "two", 2, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C2").Return(nil)
			},
			Stats{Processed: 2, Successful: 1, Failed: 1},
		},
		{
			"member count drift is a warning only",
			batch[:1],
			true,
			func(m *mock_client.MockSlack) {
				m.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 7, false), nil)
				m.EXPECT().ArchiveConversationContext(gomock.Any(), "C1").Return(nil)
			},
			Stats{Processed: 1, Successful: 1},
		},
		{
			"empty batch",
			nil,
			true,
			func(m *mock_client.MockSlack) {},
			Stats{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mcl := testSweeper(t, testPolicy())
			tt.expect(mcl)

			got := s.Archive(t.Context(), tt.batch, tt.live)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSweeper_Archive_results(t *testing.T) {
	s, mcl := testSweeper(t, testPolicy())
	mcl.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C1")).Return(remote("C1", "one", 1, false), nil)
	mcl.EXPECT().GetConversationInfoContext(gomock.Any(), infoFor("C2")).Return(remote("C2", "two", 2, true), nil)

	var results []Result
	s.resultFn = func(r Result) { results = append(results, r) }

	s.Archive(t.Context(), []roster.Channel{record("C1", "one", 1), record("C2", "two", 2)}, false)

	if assert.Len(t, results, 2) {
		assert.Equal(t, StatusWouldArchive, results[0].Status)
		assert.Equal(t, "[DRY RUN] Would archive: #one (C1)", results[0].String())
		assert.Equal(t, StatusSkipped, results[1].Status)
	}
}

func TestStats_LogValue(t *testing.T) {
	st := Stats{Processed: 4, Successful: 2, Failed: 1, Skipped: 1}
	attrs := st.LogValue().Group()
	assert.Len(t, attrs, 4)
}
