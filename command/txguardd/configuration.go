// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/chain"
	"github.com/bitmark-inc/txguard/configuration"
	"github.com/bitmark-inc/txguard/mode"
	"github.com/bitmark-inc/txguard/publish"
	"github.com/bitmark-inc/txguard/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabaseName     = "txguard"

	defaultLogDirectory = "log"
	defaultLogFile      = "txguardd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultMaxValidDuration = 180
	defaultDedupGrace       = 10

	defaultPendingTTL      = 180
	defaultPendingCapacity = 1000000

	defaultMaxQueryableByAccount = 180
	defaultRecordTTL             = 180

	defaultMaxPreceding = 3
	defaultMaxFollowing = 50

	defaultChildrenPerSecond = 500
	defaultChildBurst        = 500

	defaultQueueSize      = 10000
	defaultListen         = "tcp://127.0.0.1:2170"
	defaultExpiryInterval = 30
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type TransactionsType struct {
	MaxValidDuration int `gluamapper:"max_valid_duration" json:"max_valid_duration"`
	DedupGrace       int `gluamapper:"dedup_grace" json:"dedup_grace"`
}

type ReceiptsType struct {
	PendingTTL      int   `gluamapper:"pending_ttl" json:"pending_ttl"`
	PendingCapacity int64 `gluamapper:"pending_capacity" json:"pending_capacity"`
}

type RecordsType struct {
	MaxQueryableByAccount int `gluamapper:"max_queryable_by_account" json:"max_queryable_by_account"`
	TTL                   int `gluamapper:"ttl" json:"ttl"`
}

type ConsensusType struct {
	MaxPrecedingRecords int `gluamapper:"max_preceding_records" json:"max_preceding_records"`
	MaxFollowingRecords int `gluamapper:"max_following_records" json:"max_following_records"`
}

type ThrottleType struct {
	ChildTransactionsPerSecond float64 `gluamapper:"child_transactions_per_second" json:"child_transactions_per_second"`
	Burst                      int     `gluamapper:"burst" json:"burst"`
}

type PlatformType struct {
	QueueSize     int    `gluamapper:"queue_size" json:"queue_size"`
	SubmitConnect string `gluamapper:"submit_connect" json:"submit_connect"`
}

type ListenerType struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

type HandlerType struct {
	Connect string `gluamapper:"connect" json:"connect"`
}

type MetricsType struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

type ExpiryType struct {
	Interval int `gluamapper:"interval" json:"interval"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Profile       string       `gluamapper:"profile" json:"profile"`
	NodeMember    int64        `gluamapper:"node_member" json:"node_member"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Transactions TransactionsType      `gluamapper:"transactions" json:"transactions"`
	Receipts     ReceiptsType          `gluamapper:"receipts" json:"receipts"`
	Records      RecordsType           `gluamapper:"records" json:"records"`
	Consensus    ConsensusType         `gluamapper:"consensus" json:"consensus"`
	Throttle     ThrottleType          `gluamapper:"throttle" json:"throttle"`
	Platform     PlatformType          `gluamapper:"platform" json:"platform"`
	Listener     ListenerType          `gluamapper:"listener" json:"listener"`
	Handler      HandlerType           `gluamapper:"handler" json:"handler"`
	Metrics      MetricsType           `gluamapper:"metrics" json:"metrics"`
	Expiry       ExpiryType            `gluamapper:"expiry" json:"expiry"`
	Publishing   publish.Configuration `gluamapper:"publishing" json:"publishing"`
	Logging      logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Mainnet,
		Profile:       mode.Production,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabaseName,
		},

		Transactions: TransactionsType{
			MaxValidDuration: defaultMaxValidDuration,
			DedupGrace:       defaultDedupGrace,
		},

		Receipts: ReceiptsType{
			PendingTTL:      defaultPendingTTL,
			PendingCapacity: defaultPendingCapacity,
		},

		Records: RecordsType{
			MaxQueryableByAccount: defaultMaxQueryableByAccount,
			TTL:                   defaultRecordTTL,
		},

		Consensus: ConsensusType{
			MaxPrecedingRecords: defaultMaxPreceding,
			MaxFollowingRecords: defaultMaxFollowing,
		},

		Throttle: ThrottleType{
			ChildTransactionsPerSecond: defaultChildrenPerSecond,
			Burst:                      defaultChildBurst,
		},

		Platform: PlatformType{
			QueueSize: defaultQueueSize,
		},

		Listener: ListenerType{
			Listen: defaultListen,
		},

		Expiry: ExpiryType{
			Interval: defaultExpiryInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// abort if the chain or profile is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, errors.Errorf("Chain: %q is not supported", options.Chain)
	}
	options.Profile = strings.ToLower(options.Profile)
	switch options.Profile {
	case mode.Development, mode.Test, mode.Production:
	default:
		return nil, errors.Errorf("Profile: %q is not supported", options.Profile)
	}

	// numeric limits
	positive := map[string]int64{
		"transactions.max_valid_duration":  int64(options.Transactions.MaxValidDuration),
		"receipts.pending_ttl":             int64(options.Receipts.PendingTTL),
		"receipts.pending_capacity":        options.Receipts.PendingCapacity,
		"records.max_queryable_by_account": int64(options.Records.MaxQueryableByAccount),
		"records.ttl":                      int64(options.Records.TTL),
		"consensus.max_following_records":  int64(options.Consensus.MaxFollowingRecords),
		"throttle.burst":                   int64(options.Throttle.Burst),
		"platform.queue_size":              int64(options.Platform.QueueSize),
		"expiry.interval":                  int64(options.Expiry.Interval),
	}
	for name, value := range positive {
		if value <= 0 {
			return nil, errors.Errorf("Setting: %s = %d must be positive", name, value)
		}
	}
	if options.Transactions.DedupGrace < 0 || options.Consensus.MaxPrecedingRecords < 0 || options.Throttle.ChildTransactionsPerSecond < 0 {
		return nil, errors.New("Settings: dedup_grace, max_preceding_records and child_transactions_per_second must not be negative")
	}

	// submissions arrive here
	if "" == options.Listener.Listen {
		return nil, errors.New("Listener: listen endpoint is required")
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, errors.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
