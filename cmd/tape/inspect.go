// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/api/utils"
	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func readRecord[R reward.Record](st *state.State, addr tape.Address, rec R) (R, error) {
	data, err := st.GetData(addr)
	if err != nil {
		return rec, err
	}
	if len(data) == 0 {
		return rec, errors.Errorf("no record at %v", addr)
	}
	if err := reward.Decode(data, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func wantArgs(kind string, args []string, n int) error {
	if len(args) != n {
		return errors.Errorf("%s: expected %d arguments, got %d", kind, n, len(args))
	}
	return nil
}

// inspect decodes the record of the given kind, addressed by args.
func inspect(st *state.State, kind string, args []string) (any, error) {
	switch kind {
	case "global":
		if err := wantArgs(kind, args, 0); err != nil {
			return nil, err
		}
		addrs, err := genesis.WellKnown()
		if err != nil {
			return nil, err
		}
		return readRecord(st, addrs.Global, &reward.GlobalState{})
	case "object":
		if err := wantArgs(kind, args, 2); err != nil {
			return nil, err
		}
		owner, err := tape.ParseAddress(args[0])
		if err != nil {
			return nil, errors.WithMessage(err, "owner")
		}
		id, err := utils.ParseID("object-id", args[1])
		if err != nil {
			return nil, err
		}
		addr, _, err := reward.ObjectAddress(program, owner, id)
		if err != nil {
			return nil, err
		}
		return readRecord(st, addr, &reward.ObjectRecord{})
	case "epoch":
		if err := wantArgs(kind, args, 2); err != nil {
			return nil, err
		}
		objectID, err := utils.ParseID("object-id", args[0])
		if err != nil {
			return nil, err
		}
		epochID, err := utils.ParseID("epoch-id", args[1])
		if err != nil {
			return nil, err
		}
		addr, _, err := reward.EpochAddress(program, objectID, epochID)
		if err != nil {
			return nil, err
		}
		return readRecord(st, addr, &reward.EpochRecord{})
	case "miner":
		if err := wantArgs(kind, args, 1); err != nil {
			return nil, err
		}
		miner, err := tape.ParseAddress(args[0])
		if err != nil {
			return nil, errors.WithMessage(err, "miner")
		}
		addr, _, err := reward.MinerAddress(program, miner)
		if err != nil {
			return nil, err
		}
		return readRecord(st, addr, &reward.MinerAccount{})
	case "wallet":
		if err := wantArgs(kind, args, 1); err != nil {
			return nil, err
		}
		owner, err := tape.ParseAddress(args[0])
		if err != nil {
			return nil, errors.WithMessage(err, "owner")
		}
		return builtin.Token.WithState(st).GetAccount(genesis.Wallet(owner))
	default:
		return nil, errors.Errorf("unknown record kind %q", kind)
	}
}
