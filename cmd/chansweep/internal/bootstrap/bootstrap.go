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

// Package bootstrap contains initialisation functions shared between main
// and the interactive menu.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/rusq/chansweep/cmd/chansweep/internal/cfg"
	"github.com/rusq/chansweep/internal/client"
)

// ErrNoToken indicates that no token was given on the command line, in the
// environment, or at the prompt.
var ErrNoToken = errors.New("no token provided")

// Session authenticates with Slack and returns the client.  The token is
// taken from the configuration (flag or environment); if it is empty, the
// user is asked for it, with the input hidden.
func Session(ctx context.Context) (*client.Client, error) {
	token := cfg.SlackToken
	if token == "" {
		var err error
		if token, err = askToken(); err != nil {
			return nil, err
		}
	}
	if token == "" {
		return nil, ErrNoToken
	}

	cl, err := client.New(ctx, token)
	if err != nil {
		return nil, err
	}

	wi := cl.Info()
	slog.Info("authenticated", "user", wi.User, "team", wi.Team)
	color.New(color.FgGreen).Printf("Authenticated as %s in %s\n", wi.User, wi.Team)
	return cl, nil
}

// askToken prompts for the Slack token without echoing it.
func askToken() (string, error) {
	fmt.Fprint(os.Stderr, "Enter the Slack token (input is hidden): ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
