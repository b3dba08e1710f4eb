// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/txguard/background"
	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/expiry"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/handler"
	"github.com/bitmark-inc/txguard/historian"
	"github.com/bitmark-inc/txguard/history"
	"github.com/bitmark-inc/txguard/listener"
	"github.com/bitmark-inc/txguard/messagebus"
	"github.com/bitmark-inc/txguard/metrics"
	"github.com/bitmark-inc/txguard/mode"
	"github.com/bitmark-inc/txguard/pending"
	"github.com/bitmark-inc/txguard/platform"
	"github.com/bitmark-inc/txguard/publish"
	"github.com/bitmark-inc/txguard/reservoir"
	"github.com/bitmark-inc/txguard/storage"
	"github.com/bitmark-inc/txguard/submission"
	txversion "github.com/bitmark-inc/txguard/version"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = txversion.Version

const (
	samplerInterval = 10 * time.Second
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain, theConfiguration.Profile)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	log.Infof("chain: %s  profile: %s", mode.ChainName(), mode.Profile())
	log.Infof("database: %q", theConfiguration.Database)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// rejection and duplicate meters
	registry := prometheus.NewRegistry()
	rejected, err := metrics.NewMeter(registry, "platform_rejections", "transactions the platform refused to create")
	if nil != err {
		log.Criticalf("metrics initialise error: %s", err)
		exitwithstatus.Message("metrics initialise error: %s", err)
	}
	duplicates, err := metrics.NewMeter(registry, "duplicate_transactions", "transactions reaching consensus more than once")
	if nil != err {
		log.Criticalf("metrics initialise error: %s", err)
		exitwithstatus.Message("metrics initialise error: %s", err)
	}

	// record caches
	markers, err := pending.New(seconds(theConfiguration.Receipts.PendingTTL), theConfiguration.Receipts.PendingCapacity)
	if nil != err {
		log.Criticalf("pending cache initialise error: %s", err)
		exitwithstatus.Message("pending cache initialise error: %s", err)
	}
	defer markers.Close()
	table := history.New(theConfiguration.Records.MaxQueryableByAccount)
	records := reservoir.New(markers, table)
	submitted := dedup.New(seconds(theConfiguration.Transactions.MaxValidDuration), seconds(theConfiguration.Transactions.DedupGrace))

	// rebuild the caches from the records that have not yet expired
	// before any submission is accepted
	restored, err := expiry.Restore(restorer{records: records, submitted: submitted}, time.Now().Unix())
	if nil != err {
		log.Criticalf("record restore error: %s", err)
		exitwithstatus.Message("record restore error: %s", err)
	}
	log.Infof("restored records: %d  latest consensus time: %s", restored.Count, restored.Latest)

	// hand-off to consensus
	var p platform.Platform
	var queue *platform.Queue
	if "" == theConfiguration.Platform.SubmitConnect {
		log.Warn("no consensus platform configured: using in-process loopback")
		queue, err = platform.NewQueue(theConfiguration.Platform.QueueSize)
		if nil != err {
			log.Criticalf("platform queue error: %s", err)
			exitwithstatus.Message("platform queue error: %s", err)
		}
		defer queue.Close()
		p = queue
	} else {
		z, err := platform.NewZMQ(theConfiguration.Platform.SubmitConnect, theConfiguration.Platform.QueueSize)
		if nil != err {
			log.Criticalf("platform connect error: %s", err)
			exitwithstatus.Message("platform connect error: %s", err)
		}
		defer z.Close()
		p = z
	}

	gate := submission.New(submitted, p, mode.Policy{}, rejected)

	lstn, err := listener.New(theConfiguration.Listener.Listen, gate, records, version)
	if nil != err {
		log.Criticalf("listener initialise error: %s", err)
		exitwithstatus.Message("listener initialise error: %s", err)
	}

	// consensus handling
	tracker := historian.NewTimeTracker(theConfiguration.Consensus.MaxPrecedingRecords, theConfiguration.Consensus.MaxFollowingRecords)
	throttle := historian.NewChildThrottle(theConfiguration.Throttle.ChildTransactionsPerSecond, theConfiguration.Throttle.Burst)
	creations := expiry.NewCreations(seconds(theConfiguration.Records.TTL))
	hd := handler.New(historian.New(records, creations, tracker, throttle), records, submitted, duplicates)
	hd.Resume(restored.Latest)

	processes := background.Processes{
		lstn,
		expiry.NewSweeper(table, seconds(theConfiguration.Expiry.Interval)),
		metrics.NewSampler(samplerInterval, rejected, duplicates),
	}
	if nil != queue {
		processes = append(processes, handler.NewLoopback(hd, queue.Transactions(), theConfiguration.NodeMember))
	} else {
		if "" == theConfiguration.Handler.Connect {
			log.Critical("handler connect endpoint is required with a consensus platform")
			exitwithstatus.Message("handler connect endpoint is required with a consensus platform")
		}
		consumer, err := handler.NewConsumer(theConfiguration.Handler.Connect, hd)
		if nil != err {
			log.Criticalf("handler initialise error: %s", err)
			exitwithstatus.Message("handler initialise error: %s", err)
		}
		processes = append(processes, consumer)
	}
	if len(theConfiguration.Publishing.Broadcast) > 0 {
		bus, err := messagebus.New(theConfiguration.Platform.QueueSize)
		if nil != err {
			log.Criticalf("record stream error: %s", err)
			exitwithstatus.Message("record stream error: %s", err)
		}
		publisher, err := publish.New(&theConfiguration.Publishing, bus.Chan())
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		hd.SetStream(bus)
		processes = append(processes, publisher)
	}
	if "" != theConfiguration.Metrics.Listen {
		processes = append(processes, metrics.NewServer(theConfiguration.Metrics.Listen, registry))
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	running := background.Start(processes, nil)
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
	running.Stop()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
