// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	program  tape.Address
	data     []byte
	accounts []tape.Address
	signer   tape.Address
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a program instruction, executed as if signed by signer.
func (b *Builder) Call(program tape.Address, data []byte, accounts []tape.Address, signer tape.Address) *Builder {
	b.calls = append(b.calls, call{program, data, accounts, signer})
	return b
}

// Build applies the presets to a fresh state and commits it.
// It returns the hash of the committed change set and the events emitted by calls.
func (b *Builder) Build(stater *state.Stater) (hash tape.Bytes32, events []string, err error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return tape.Bytes32{}, nil, errors.Wrap(err, "state process")
		}
	}

	for _, c := range b.calls {
		program, ok := builtin.Lookup(c.program)
		if !ok {
			return tape.Bytes32{}, nil, errors.Errorf("call: unknown program %v", c.program)
		}
		env := xenv.New(c.program, st, &xenv.TransactionContext{
			Signers: []tape.Address{c.signer},
			Time:    b.timestamp,
		}, c.accounts)
		if err := program.Execute(env, c.data); err != nil {
			return tape.Bytes32{}, nil, errors.Wrapf(err, "call %v", program.Instruction(c.data))
		}
		events = append(events, env.Events()...)
	}

	stage := st.Stage()
	hash = stage.Hash()
	if err := stage.Commit(); err != nil {
		return tape.Bytes32{}, nil, errors.Wrap(err, "commit state")
	}
	return hash, events, nil
}
