// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/api/utils"
	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

type Accounts struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Accounts {
	return &Accounts{stater}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	acc, err := a.stater.NewState().GetAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{Owner: acc.Owner, Data: acc.Data})
}

func (a *Accounts) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	acc, err := builtin.Token.WithState(a.stater.NewState()).GetAccount(addr)
	if err != nil {
		if errors.Is(err, token.ErrAccountNotFound) {
			return utils.NotFound(err)
		}
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, &TokenAccount{Mint: acc.Mint, Owner: acc.Owner, Amount: acc.Amount})
}

// readRecord decodes the record stored at addr, not found when the account is empty.
func readRecord[R reward.Record](st *state.State, addr tape.Address, rec R) error {
	acc, err := st.GetAccount(addr)
	if err != nil {
		return err
	}
	if len(acc.Data) == 0 {
		return utils.NotFound(errors.Errorf("no record at %v", addr))
	}
	if acc.Owner != builtin.Reward.Address {
		return utils.NotFound(errors.Errorf("%v not owned by the reward program", addr))
	}
	if err := reward.Decode(acc.Data, rec); err != nil {
		return utils.HTTPError(err, http.StatusUnprocessableEntity)
	}
	return nil
}

func (a *Accounts) handleGetGlobal(w http.ResponseWriter, _ *http.Request) error {
	addr, _, err := reward.GlobalAddress(builtin.Reward.Address)
	if err != nil {
		return err
	}
	var g reward.GlobalState
	if err := readRecord(a.stater.NewState(), addr, &g); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertGlobal(addr, &g))
}

func (a *Accounts) handleGetObject(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	id, err := utils.ParseID("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	addr, _, err := reward.ObjectAddress(builtin.Reward.Address, owner, id)
	if err != nil {
		return utils.BadRequest(err)
	}
	var o reward.ObjectRecord
	if err := readRecord(a.stater.NewState(), addr, &o); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertObject(addr, &o))
}

func (a *Accounts) handleGetEpoch(w http.ResponseWriter, req *http.Request) error {
	var ids [2]*uint256.Int
	for i, name := range []string{"objectID", "epochID"} {
		id, err := utils.ParseID(name, mux.Vars(req)[name])
		if err != nil {
			return err
		}
		ids[i] = id
	}
	addr, _, err := reward.EpochAddress(builtin.Reward.Address, ids[0], ids[1])
	if err != nil {
		return utils.BadRequest(err)
	}
	var e reward.EpochRecord
	if err := readRecord(a.stater.NewState(), addr, &e); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertEpoch(addr, &e))
}

func (a *Accounts) handleGetMiner(w http.ResponseWriter, req *http.Request) error {
	miner, err := utils.ParseAddress("miner", mux.Vars(req)["miner"])
	if err != nil {
		return err
	}
	addr, _, err := reward.MinerAddress(builtin.Reward.Address, miner)
	if err != nil {
		return utils.BadRequest(err)
	}
	var m reward.MinerAccount
	if err := readRecord(a.stater.NewState(), addr, &m); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertMiner(addr, &m))
}

// Mount serves raw and token accounts under pathPrefix, and decoded reward records
// under pathPrefix/records.
func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/records/global").
		Methods(http.MethodGet).
		Name("GET /accounts/records/global").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetGlobal))
	sub.Path("/records/objects/{owner}/{id}").
		Methods(http.MethodGet).
		Name("GET /accounts/records/objects/{owner}/{id}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetObject))
	sub.Path("/records/epochs/{objectID}/{epochID}").
		Methods(http.MethodGet).
		Name("GET /accounts/records/epochs/{objectID}/{epochID}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetEpoch))
	sub.Path("/records/miners/{miner}").
		Methods(http.MethodGet).
		Name("GET /accounts/records/miners/{miner}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetMiner))

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/token").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/token").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetToken))
}
