// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/tapedrive/tape/api/utils"
	"github.com/tapedrive/tape/node"
	"github.com/tapedrive/tape/runtime"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

type Transactions struct {
	node *node.Node
}

func New(n *node.Node) *Transactions {
	return &Transactions{n}
}

// handleSendTransaction applies a signed transaction and responds its receipt.
func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var raw RawTx
	if err := utils.ParseJSON(req.Body, &raw); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}
	var trx tx.Transaction
	if err := trx.UnmarshalBinary(raw.Raw); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "raw"))
	}
	if _, err := trx.Signers(); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "signatures"))
	}

	receipt, err := t.node.Submit(&trx)
	if err != nil {
		switch {
		case errors.Is(err, node.ErrKnownTx):
			return utils.Forbidden(err)
		case errors.Is(err, runtime.ErrUnknownProgram):
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := tape.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "id"))
	}
	receipt, ok := t.node.Receipt(id)
	if !ok {
		return utils.NotFound(pkgerrors.Errorf("receipt of %v not found", id))
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
