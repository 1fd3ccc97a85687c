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

// Command chansweep identifies inactive, low-membership channels in a
// Slack workspace from an exported channel roster, posts a cleanup notice
// to the operations channel, and archives the channels that meet the
// criteria.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/rusq/chansweep/cmd/chansweep/internal/bootstrap"
	"github.com/rusq/chansweep/cmd/chansweep/internal/cfg"
	"github.com/rusq/chansweep/cmd/chansweep/internal/ui"
	"github.com/rusq/chansweep/internal/policy"
	"github.com/rusq/chansweep/internal/roster"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience
// trying to create .env file with the notepad as it will battle for having
// the "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

var printVersion = flag.Bool("V", false, "print version and exit")

func init() {
	cfg.SetBaseFlags(flag.CommandLine, cfg.DefaultFlags)
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(
		flag.CommandLine.Output(),
		"Chansweep %s\n"+
			"Chansweep finds inactive, low-membership channels in a Slack workspace\n"+
			"channel export, and either posts a cleanup notice or archives them\n"+
			"through the Slack API.\n\n"+
			"Usage: %s [flags]\n\n",
		build, filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	loadSecrets(secrets)
	flag.Parse()

	if *printVersion {
		fmt.Println(build)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		if cfg.Verbose {
			log.Fatalf("%+v", err)
		} else {
			log.Fatal(err)
		}
	}
}

func run(ctx context.Context) error {
	lg, stopLog, err := initLog(cfg.LogFile, cfg.JSONLog, cfg.Verbose)
	if err != nil {
		return err
	}
	defer stopLog()
	stopTrace := initTrace(cfg.TraceFile)
	defer stopTrace()

	pol := policy.Default()
	if cfg.PolicyFile != "" {
		if pol, err = policy.Load(cfg.PolicyFile); err != nil {
			return err
		}
		lg.Info("cleanup policy loaded", "filename", cfg.PolicyFile)
	}

	csvFile := cfg.CSVFile
	if csvFile == "" {
		csvFile, err = ui.FileSelector("Channel export", "Path to the exported channel list (CSV)", ui.WithMustExist())
		if err != nil {
			return err
		}
	}
	if _, err := os.Stat(csvFile); err != nil {
		return fmt.Errorf("channel export: %w", err)
	}

	channels, _ := roster.Load(csvFile, pol, time.Now())
	fmt.Printf("\nIdentified %d channels for archival\n", len(channels))
	if len(channels) == 0 {
		fmt.Println("No channels meet the cleanup criteria.")
		return nil
	}

	cl, err := bootstrap.Session(ctx)
	if err != nil {
		return err
	}

	batch := prefix(channels, cfg.BatchSize)
	return interactive(ctx, cl, pol, batch)
}

// prefix returns the first n channels of the ordered candidate list, or
// the whole list if it is shorter.
func prefix(cc []roster.Channel, n int) []roster.Channel {
	if n <= 0 || n >= len(cc) {
		return cc
	}
	return cc[:n]
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
