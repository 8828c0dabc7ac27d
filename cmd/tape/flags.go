// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tapedrive/tape/clock"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for state and event databases",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis YAML file (devnet when omitted)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 256,
		Usage: "megabytes of ram allocated to the state database cache",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Usage: "log format (terminal|logfmt|json), detected from the output when omitted",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiBacktraceLimitFlag = cli.Uint64Flag{
		Name:  "api-backtrace-limit",
		Value: 1000,
		Usage: "limit the distance between 'pos' and the latest batch for subscriptions",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served at /metrics",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: clock.DefaultNTPServer,
		Usage: "NTP server probed for clock drift, empty to disable",
	}

	keyFileFlag = cli.StringFlag{
		Name:  "key",
		Usage: "file holding the hex encoded signing key, created when missing",
	}
	devAccountFlag = cli.IntFlag{
		Name:  "dev-account",
		Value: -1,
		Usage: "sign with the built-in dev account of this index",
	}
	apiURLFlag = cli.StringFlag{
		Name:  "api-url",
		Usage: "submit through a running node instead of the local data dir",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump decoded records instead of printing JSON",
	}

	objectIDFlag = cli.StringFlag{
		Name:  "object-id",
		Usage: "object identifier (128-bit, decimal or 0x hex)",
	}
	epochIDFlag = cli.StringFlag{
		Name:  "epoch-id",
		Usage: "epoch identifier (128-bit, decimal or 0x hex)",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "object owner address",
	}
	minerFlag = cli.StringFlag{
		Name:  "miner",
		Usage: "miner address",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "token amount",
	}
	nonceFlag = cli.Uint64Flag{
		Name:  "nonce",
		Usage: "challenge nonce of the epoch",
	}
	hashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "32 bytes hex: commitment, proof or evidence hash",
	}
	proofTypeFlag = cli.UintFlag{
		Name:  "proof-type",
		Usage: "proof type tag (0 compact hash, 1 snark)",
	}
	sizeFlag = cli.Uint64Flag{
		Name:  "size",
		Usage: "object size in bytes",
	}
	retentionFlag = cli.Uint64Flag{
		Name:  "retention",
		Usage: "number of epochs the object is kept",
	}
)

var commonFlags = []cli.Flag{
	dataDirFlag,
	cacheFlag,
	verbosityFlag,
	logFormatFlag,
}

var signingFlags = append([]cli.Flag{
	keyFileFlag,
	devAccountFlag,
	apiURLFlag,
}, commonFlags...)
