// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
)

// setup command handler
//
// commands that run without a configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")
		fmt.Printf("  dump-configuration         (dc)     - display the parsed configuration as JSON\n\n")
		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n\n")

	default:
		return false
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// configuration commands
//
// return:
//   true  if command was handled
//   false if no command or unknown command
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "dump-configuration", "dc":
		text, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			exitwithstatus.Message("configuration encode error: %s", err)
		}
		fmt.Printf("%s\n", text)

	case "start", "run":
		return false // continue processing

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and prefor normal exit from main
	return true
}
