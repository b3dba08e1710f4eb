// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txguard/storage"
	txversion "github.com/bitmark-inc/txguard/version"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = txversion.Version

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "txguard-records"
	app.Usage = "inspect the persisted transaction records of a stopped txguardd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: "*database `NAME` as in the daemon configuration",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "list persisted records in consensus order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payer, p",
					Value: "",
					Usage: " only records charged to `ACCOUNT`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 0,
					Usage: " at most `COUNT` records, 0 for all",
				},
			},
			Action: runList,
		},
		{
			Name:      "get",
			Usage:     "every persisted record of a transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "*transaction id `TXID` as shard.realm.num@seconds.nanos",
				},
			},
			Action: runGet,
		},
		{
			Name:  "version",
			Usage: "display txguard-records version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		database := c.GlobalString("database")
		if "" == database {
			return fmt.Errorf("database name is required")
		}

		logging := logger.Configuration{
			Directory: os.TempDir(),
			File:      "txguard-records.log",
			Size:      1048576,
			Count:     10,
			Console:   false,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		}
		if err := logger.Initialise(logging); nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "database: %q\n", database)
		}
		if err := storage.Initialise(database, storage.ReadOnly); nil != err {
			logger.Finalise()
			return err
		}

		c.App.Metadata["config"] = &metadata{
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	// close the database
	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			storage.Finalise()
			logger.Finalise()
		}
		return nil
	}

	return app
}
