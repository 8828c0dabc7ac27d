// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/tapedrive/tape/tape"
)

type program struct {
	name    string
	Address tape.Address
}

func newProgram(name string) *program {
	return &program{
		name,
		tape.BytesToAddress([]byte(name)),
	}
}

func (p *program) Name() string {
	return p.name
}
