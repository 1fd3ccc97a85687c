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

// Package sweep implements the two batch operations over the filtered
// channel roster: posting the cleanup notice, and the verify-then-archive
// loop.  Neither operation mutates the roster; archival reports outcomes
// against it.
package sweep

import (
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/rusq/chansweep/internal/client"
	"github.com/rusq/chansweep/internal/network"
	"github.com/rusq/chansweep/internal/policy"
)

// Sweeper runs batch operations against one workspace.  It is not safe for
// concurrent use, which is fine, because the whole tool is sequential.
type Sweeper struct {
	cl  client.Slack
	pol policy.Policy

	lg       *slog.Logger
	out      io.Writer
	pacer    *rate.Limiter // inter-record delay of the archival loop
	pager    *rate.Limiter // conversations.list is Tier 2
	resultFn func(Result)
	now      func() time.Time
}

// Option is the signature of the Sweeper option-setting function.
type Option func(*Sweeper)

// WithLogger sets the logger.  Default is slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Sweeper) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// WithOutput sets the writer for the per-record console lines.
func WithOutput(w io.Writer) Option {
	return func(s *Sweeper) {
		if w != nil {
			s.out = w
		}
	}
}

// WithResultFn sets the callback invoked after each archival record.  It
// replaces the default, which prints the result to the output writer.
func WithResultFn(fn func(Result)) Option {
	return func(s *Sweeper) {
		if fn != nil {
			s.resultFn = fn
		}
	}
}

// New creates a Sweeper operating through cl under the given policy.  The
// inter-record pacing is taken from the policy delay.
func New(cl client.Slack, pol policy.Policy, opt ...Option) *Sweeper {
	s := &Sweeper{
		cl:    cl,
		pol:   pol,
		lg:    slog.Default(),
		out:   os.Stdout,
		pacer: network.Pacer(time.Duration(pol.Delay)),
		pager: network.NewLimiter(network.Tier2, 1, 0),
		now:   time.Now,
	}
	for _, o := range opt {
		o(s)
	}
	if s.resultFn == nil {
		s.resultFn = s.printResult
	}
	return s
}
