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
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar returns a progress bar for max items.  In debug mode the bar
// is silent, so that it does not interleave with the log output on stderr.
func ProgressBar(ctx context.Context, lg *slog.Logger, max int, opts ...progressbar.Option) *progressbar.ProgressBar {
	if lg.Enabled(ctx, slog.LevelDebug) {
		return progressbar.DefaultSilent(int64(max))
	}
	fullopts := append([]progressbar.Option{
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
	}, opts...)

	pb := progressbar.NewOptions(max, fullopts...)
	_ = pb.RenderBlank()
	return pb
}
