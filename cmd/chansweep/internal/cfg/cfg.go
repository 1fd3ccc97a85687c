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

// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rusq/osenv/v2"
)

var (
	TraceFile string
	LogFile   string
	JSONLog   bool
	Verbose   bool

	CSVFile    string
	SlackToken string
	PolicyFile string
	BatchSize  int
)

// LogLevel is the level of the default logger, shared by every handler
// that initLog installs.
var LogLevel = new(slog.LevelVar)

// SetDebugLevel switches the default logger to debug.
func SetDebugLevel() {
	LogLevel.Set(slog.LevelDebug)
}

type FlagMask int

const (
	DefaultFlags  FlagMask = 0
	OmitAuthFlags FlagMask = 1 << iota
	OmitPolicyFlag
	OmitBatchFlag

	OmitAll = OmitAuthFlags | OmitPolicyFlag | OmitBatchFlag
)

// DefBatchSize is the largest number of channels one run operates on.
const DefBatchSize = 50

// SetBaseFlags sets the base flags on the flag set.
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", osenv.Value("LOG_FILE", defLogFile()), "log `file`.  Set to an empty string to log to STDERR only\n(environment: LOG_FILE)")
	fs.BoolVar(&JSONLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.StringVar(&CSVFile, "csv", "", "channel export `file` to load; will be asked for, if not given")

	if mask&OmitAuthFlags == 0 {
		fs.StringVar(&SlackToken, "token", osenv.Secret("SLACK_TOKEN", ""), "Slack `token` (environment: SLACK_TOKEN)")
	}
	if mask&OmitPolicyFlag == 0 {
		fs.StringVar(&PolicyFile, "policy", osenv.Value("POLICY_FILE", ""), "TOML `file` with cleanup policy overrides")
	}
	if mask&OmitBatchFlag == 0 {
		fs.IntVar(&BatchSize, "batch", DefBatchSize, "maximum `number` of channels to process in one run")
	}
}

// defLogFile returns the timestamped default log file name for this run.
func defLogFile() string {
	return fmt.Sprintf("chansweep_%s.log", time.Now().Format("20060102_150405"))
}
