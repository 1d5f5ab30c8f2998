// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/state"
	"github.com/bitmark-inc/tokenstore/storage"
	"github.com/bitmark-inc/tokenstore/util"
)

type metadata struct {
	config  *Configuration
	db      *storage.Database
	log     *logger.L
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that do not open the database
var noDatabase = map[string]struct{}{
	"":        {},
	"help":    {},
	"h":       {},
	"keygen":  {},
	"version": {},
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "tokenstore"
	app.Usage = "token and transaction store on LevelDB"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "config-file, c",
			Value:  "tokenstore.conf",
			Usage:  " configuration `FILE`",
			EnvVar: "TOKENSTORE_CONFIG",
		},
		cli.StringSliceFlag{
			Name:  "define, d",
			Usage: " set Lua global for the configuration `NAME=VALUE`",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " sender private `KEY` for commands that change state",
			EnvVar: "TOKENSTORE_KEY",
		},
		cli.Uint64Flag{
			Name:  "height",
			Value: 0,
			Usage: " current block `HEIGHT` used to check expirations",
		},
	}
	app.Commands = commands()

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		if _, ok := noDatabase[command]; ok {
			c.App.Metadata = map[string]interface{}{
				"config": &metadata{
					verbose: verbose,
					e:       e,
					w:       w,
				},
			}
			return nil
		}

		fs := afero.NewOsFs()
		file := c.GlobalString("config-file")
		if !util.FileExists(fs, file) {
			return fmt.Errorf("configuration file: %q does not exist", file)
		}

		variables := make(map[string]string)
		for _, d := range c.GlobalStringSlice("define") {
			s := strings.SplitN(d, "=", 2)
			if 2 != len(s) {
				return fmt.Errorf("define: %q is not NAME=VALUE", d)
			}
			variables[s[0]] = s[1]
		}

		config, err := getConfiguration(fs, file, variables)
		if nil != err {
			return err
		}
		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
			fmt.Fprintf(e, "database: %q\n", config.Database.Name)
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}
		log := logger.New("main")
		log.Infof("version: %s  command: %s", version, command)

		if err := fault.Initialise(); nil != err {
			return err
		}
		if err := state.Initialise(); nil != err {
			return err
		}

		readOnly := storage.ReadWrite
		if _, ok := readOnlyCommands[command]; ok {
			readOnly = storage.ReadOnly
		}
		db, err := storage.Open(config.Database.Name, readOnly)
		if nil != err {
			log.Criticalf("open database: %q  error: %s", config.Database.Name, err)
			return err
		}

		c.App.Metadata = map[string]interface{}{
			"config": &metadata{
				config:  config,
				db:      db,
				log:     log,
				verbose: verbose,
				e:       e,
				w:       w,
			},
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.db {
			return nil
		}
		err := m.db.Close()
		_ = state.Finalise()
		fault.Finalise()
		m.log.Info("finished")
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
