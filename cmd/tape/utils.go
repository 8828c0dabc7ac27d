// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/logdb"
	"github.com/tapedrive/tape/lvldb"
	"github.com/tapedrive/tape/node"
	"github.com/tapedrive/tape/runtime"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

const (
	stateDBName = "state.db"
	logDBName   = "logs.db"
	genesisFile = "genesis.yaml"
	dataDirPerm = 0o700
	genesisPerm = 0o600
)

func initLogger(ctx *cli.Context) error {
	lvl := new(slog.LevelVar)
	lvl.Set(log.FromVerbosity(ctx.Int(verbosityFlag.Name)))

	handler, err := log.NewHandler(os.Stderr, lvl, ctx.String(logFormatFlag.Name))
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".tape")
	}
	return ""
}

func loadKey(keyFile string) (key *ecdsa.PrivateKey, err error) {
	// try to load from file
	if key, err = crypto.LoadECDSA(keyFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		return key, nil
	}

	// no such file, generate new key and write in
	key, err = crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	if err := crypto.SaveECDSA(keyFile, key); err != nil {
		return nil, err
	}
	return key, nil
}

// signerKey resolves the signing key from --dev-account or --key.
func signerKey(ctx *cli.Context) (tape.Address, *ecdsa.PrivateKey, error) {
	if i := ctx.Int(devAccountFlag.Name); i >= 0 {
		accounts := genesis.DevAccounts()
		if i >= len(accounts) {
			return tape.Address{}, nil, errors.Errorf("dev account index out of range [0, %d)", len(accounts))
		}
		return accounts[i].Address, accounts[i].PrivateKey, nil
	}

	keyFile := ctx.String(keyFileFlag.Name)
	if keyFile == "" {
		keyFile = filepath.Join(ctx.String(dataDirFlag.Name), "signer.key")
	}
	key, err := loadKey(keyFile)
	if err != nil {
		return tape.Address{}, nil, errors.Wrapf(err, "load key at '%v'", keyFile)
	}
	return tape.PrincipalOf(&key.PublicKey), key, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.CustomGenesis, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		return genesis.LoadCustomGenesis(path)
	}
	return genesis.DevnetConfig(), nil
}

// instance is an opened data dir.
type instance struct {
	dir    string
	gen    *genesis.CustomGenesis
	mainDB *lvldb.LevelDB
	logDB  *logdb.LogDB
	stater *state.Stater
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 64
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120)
}

func dbOptions(ctx *cli.Context) lvldb.Options {
	opts := lvldb.Options{
		CacheSize:              normalizeCacheSize(ctx.Int(cacheFlag.Name)),
		OpenFilesCacheCapacity: suggestFDCache(),
	}
	logger.Debug("state database options", "cache", opts.CacheSize, "fd", opts.OpenFilesCacheCapacity)
	return opts
}

func openDatabases(dir string, opts lvldb.Options) (*lvldb.LevelDB, *logdb.LogDB, error) {
	mainDB, err := lvldb.New(filepath.Join(dir, stateDBName), opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open state database")
	}
	logDB, err := logdb.New(filepath.Join(dir, logDBName))
	if err != nil {
		mainDB.Close()
		return nil, nil, errors.Wrap(err, "open log database")
	}
	return mainDB, logDB, nil
}

// initInstance writes the genesis state into an empty data dir.
func initInstance(dir string, gen *genesis.CustomGenesis, opts lvldb.Options) (tape.Bytes32, error) {
	if _, err := os.Stat(filepath.Join(dir, genesisFile)); err == nil {
		return tape.Bytes32{}, errors.Errorf("data dir '%v' already initialized", dir)
	}
	gene, err := genesis.NewCustomNet(gen)
	if err != nil {
		return tape.Bytes32{}, err
	}
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return tape.Bytes32{}, errors.Wrapf(err, "create data dir at '%v'", dir)
	}
	mainDB, logDB, err := openDatabases(dir, opts)
	if err != nil {
		return tape.Bytes32{}, err
	}
	defer logDB.Close()
	defer mainDB.Close()

	tape.SetConfig(gene.Params())
	hash, _, err := gene.Build(state.NewStater(mainDB))
	if err != nil {
		return tape.Bytes32{}, errors.Wrap(err, "build genesis")
	}

	data, err := yaml.Marshal(gen)
	if err != nil {
		return tape.Bytes32{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, genesisFile), data, genesisPerm); err != nil {
		return tape.Bytes32{}, err
	}
	return hash, nil
}

// openInstance opens an initialized data dir and applies the protocol parameters it was created with.
func openInstance(dir string, opts lvldb.Options) (*instance, error) {
	path := filepath.Join(dir, genesisFile)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Errorf("data dir '%v' not initialized, run init first", dir)
	}
	gen, err := genesis.LoadCustomGenesis(path)
	if err != nil {
		return nil, err
	}
	mainDB, logDB, err := openDatabases(dir, opts)
	if err != nil {
		return nil, err
	}

	tape.SetConfig(gen.Params)

	return &instance{
		dir:    dir,
		gen:    gen,
		mainDB: mainDB,
		logDB:  logDB,
		stater: state.NewStater(mainDB),
	}, nil
}

func (in *instance) newNode(clk clock.Clock) (*node.Node, error) {
	return node.New(in.stater, runtime.New(in.stater, clk), in.logDB)
}

func (in *instance) Close() {
	if err := in.logDB.Close(); err != nil {
		logger.Warn("failed to close log database", "err", err)
	}
	if err := in.mainDB.Close(); err != nil {
		logger.Warn("failed to close state database", "err", err)
	}
}

// submitLocal applies trx directly to the data dir.
func submitLocal(dir string, opts lvldb.Options, trx *tx.Transaction) (*tx.Receipt, error) {
	in, err := openInstance(dir, opts)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	n, err := in.newNode(clock.System{})
	if err != nil {
		return nil, err
	}
	return n.Submit(trx)
}

// submitRemote posts trx to the API of a running node.
func submitRemote(ctx context.Context, apiURL string, trx *tx.Transaction) (*tx.Receipt, error) {
	raw, err := trx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]any{"raw": hexutil.Bytes(raw)})
	if err != nil {
		return nil, err
	}
	url := strings.TrimSuffix(apiURL, "/") + "/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%v: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	var receipt tx.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, errors.Wrap(err, "decode receipt")
	}
	return &receipt, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
