// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tapedrive/tape/api/utils"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/tape"
)

// Source is the node state reported by the status route.
type Source interface {
	Batch() uint32
	Now() uint64
}

// Status describes the running node.
type Status struct {
	Batch     uint32             `json:"batch"`
	Time      uint64             `json:"time"`
	Params    tape.Config        `json:"params"`
	Addresses *genesis.Addresses `json:"addresses"`
}

type Handler struct {
	src Source
}

func New(src Source) *Handler {
	return &Handler{src}
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	addrs, err := genesis.WellKnown()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Status{
		Batch:     h.src.Batch(),
		Time:      h.src.Now(),
		Params:    tape.CurrentConfig(),
		Addresses: addrs,
	})
}

func (h *Handler) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /status").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetStatus))
}
