// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tapedrive/tape/api"
	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/metrics"
	"github.com/tapedrive/tape/tape"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

const (
	maxClockDrift      = 10 * time.Second
	clockCheckInterval = time.Hour
	shutdownTimeout    = 5 * time.Second
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "tape"
	app.Usage = "Proof of storage reward node"
	app.Copyright = "2018 The VeChainThor developers"
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "write the genesis state into the data dir",
			Flags:  append([]cli.Flag{genesisFlag}, commonFlags...),
			Action: initAction,
		},
		{
			Name:  "serve",
			Usage: "run the node and serve its API",
			Flags: append([]cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiBacktraceLimitFlag,
				apiLogsLimitFlag,
				enableAPILogsFlag,
				enableMetricsFlag,
				pprofFlag,
				ntpServerFlag,
			}, commonFlags...),
			Action: serveAction,
		},
		{
			Name:      "inspect",
			Usage:     "print a record from the local state",
			ArgsUsage: "global | object <owner> <object-id> | epoch <object-id> <epoch-id> | miner <address> | wallet <owner>",
			Flags:     append([]cli.Flag{dumpFlag}, commonFlags...),
			Action:    inspectAction,
		},
	}
	app.Commands = append(app.Commands, instructionCommands()...)
	return app
}

func initAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	gen, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	hash, err := initInstance(dir, gen, dbOptions(ctx))
	if err != nil {
		return err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return err
	}
	logger.Info("genesis written", "dir", dir, "hash", hash)
	return printJSON(os.Stdout, struct {
		Name      string             `json:"name"`
		StateHash tape.Bytes32       `json:"stateHash"`
		Addresses *genesis.Addresses `json:"addresses"`
	}{gen.Name, hash, addrs})
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	if err := initLogger(ctx); err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	in, err := openInstance(ctx.String(dataDirFlag.Name), dbOptions(ctx))
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing databases..."); in.Close() }()
	tape.LockConfig()

	n, err := in.newNode(clock.System{})
	if err != nil {
		return err
	}

	handler, closeAPI := api.New(n, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		BacktraceLimit:  uint32(ctx.Uint64(apiBacktraceLimitFlag.Name)),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})

	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		closeAPI()
		return errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	logger.Info("node started",
		"network", in.gen.Name,
		"dir", in.dir,
		"api", "http://"+listener.Addr().String()+"/",
		"batch", n.Batch(),
	)

	g, gctx := errgroup.WithContext(handleExitSignal())
	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping API server...")
		closeAPI()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		g.Go(func() error {
			watchClockDrift(gctx, server)
			return nil
		})
	}
	return g.Wait()
}

// watchClockDrift warns while the local clock is off, since deadlines are judged against it.
func watchClockDrift(ctx context.Context, server string) {
	ticker := time.NewTicker(clockCheckInterval)
	defer ticker.Stop()
	for {
		drift, err := clock.NTPDrift(server)
		switch {
		case err != nil:
			logger.Debug("failed to query NTP server", "server", server, "err", err)
		case drift > maxClockDrift || drift < -maxClockDrift:
			logger.Warn("local clock drifted, epoch deadlines may be misjudged", "drift", drift)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func inspectAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	args := []string(ctx.Args())
	if len(args) == 0 {
		return errors.New("missing record kind")
	}

	in, err := openInstance(ctx.String(dataDirFlag.Name), dbOptions(ctx))
	if err != nil {
		return err
	}
	defer in.Close()

	rec, err := inspect(in.stater.NewState(), strings.ToLower(args[0]), args[1:])
	if err != nil {
		return err
	}
	if ctx.Bool(dumpFlag.Name) {
		dumper.Fdump(os.Stdout, rec)
		return nil
	}
	return printJSON(os.Stdout, rec)
}
