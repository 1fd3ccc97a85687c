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

// Package network provides client-side pacing for the Slack API calls.
// The limiters throttle the request rate only; there is no retry logic in
// this tool, a failed call is counted and reported by the caller.
package network

import (
	"time"

	"golang.org/x/time/rate"
)

// Tier represents the rate limit Tier:
// https://api.slack.com/docs/rate-limits
type Tier int

const (
	// base throttling defined in events per minute
	NoTier Tier = 6000 // no Tier is applied

	// Tier1 Tier = 1
	Tier2 Tier = 20
	Tier3 Tier = 50
	Tier4 Tier = 100
)

// NewLimiter returns a throttler with rateLimit requests per minute.
// optionally caller may specify the boost.
func NewLimiter(t Tier, burst uint, boost int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(every(t, boost)), int(burst))
}

func every(t Tier, boost int) time.Duration {
	return time.Minute / time.Duration(int(t)+boost)
}

// Pacer returns a limiter that admits one event per d.  It is used for the
// fixed inter-record delay of the archival loop.  A non-positive d returns
// an unlimited limiter, which is what the tests use.
func Pacer(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}
