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

// Package client provides the Slack API capability that the sweep operates
// through.  The interface is deliberately narrow: five operations, which is
// everything the tool is allowed to do to a workspace.
package client

import (
	"context"

	"github.com/rusq/slack"
)

//go:generate mockgen -destination mock_client/mock_client.go . Slack

// Slack is the set of Slack API methods used by chansweep.
type Slack interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	ArchiveConversationContext(ctx context.Context, channelID string) error
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ Slack = (*Client)(nil)

// Client wraps *slack.Client together with the workspace identity obtained
// from the authentication test.  All Slack interface methods are promoted
// from the embedded *slack.Client.
type Client struct {
	*slack.Client
	wi *slack.AuthTestResponse
}

// Wrap wraps a *slack.Client without authenticating.  Intended for testing.
func Wrap(cl *slack.Client) *Client {
	return &Client{Client: cl}
}

// New dials Slack with the given token and runs an auth test.  If the test
// fails, an *AuthError is returned.
func New(ctx context.Context, token string) (*Client, error) {
	scl := slack.New(token)
	wi, err := scl.AuthTestContext(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return &Client{Client: scl, wi: wi}, nil
}

// Info returns the workspace identity recorded during the auth test, or nil
// if the client was created with Wrap.
func (c *Client) Info() *slack.AuthTestResponse {
	return c.wi
}
