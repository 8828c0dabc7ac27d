// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/xenv"
)

// Builtin programs binding.
var (
	Token  = &tokenProgram{newProgram("Token")}
	Reward = &rewardProgram{newProgram("Reward")}
)

type (
	tokenProgram  struct{ *program }
	rewardProgram struct{ *program }
)

func (t *tokenProgram) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// WithEnv binds the reward program to an execution environment. Transfers go through
// the token program over the same state.
func (r *rewardProgram) WithEnv(env *xenv.Environment) *reward.Reward {
	return reward.New(r.Address, env, Token.WithState(env.State()))
}

func (r *rewardProgram) Execute(env *xenv.Environment, data []byte) error {
	return r.WithEnv(env).Execute(data)
}

func (r *rewardProgram) Instruction(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	return reward.Tag(data[0]).String()
}

// Executable is a program that accepts instructions from transactions.
type Executable interface {
	Name() string
	// Instruction names the instruction encoded in data, for logs and metrics.
	Instruction(data []byte) string
	Execute(env *xenv.Environment, data []byte) error
}

var executables = map[tape.Address]Executable{
	Reward.Address: Reward,
}

// Lookup returns the executable program deployed at addr.
func Lookup(addr tape.Address) (Executable, bool) {
	p, ok := executables[addr]
	return p, ok
}
