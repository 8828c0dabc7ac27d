// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of the reward program errors.
const ModuleName = "reward"

// Errors returned by the reward program. Codes are stable and surface in receipts.
var (
	ErrMissingSignature = errorsmod.Register(ModuleName, 2, "missing required signature")
	ErrNotAdmin         = errorsmod.Register(ModuleName, 3, "signer is not the protocol admin")

	ErrAddressMismatch = errorsmod.Register(ModuleName, 4, "account address does not match its derivation")
	ErrIllegalOwner    = errorsmod.Register(ModuleName, 5, "account not owned by the expected program or principal")

	ErrInvalidStatus      = errorsmod.Register(ModuleName, 6, "epoch status does not allow this transition")
	ErrUnderDispute       = errorsmod.Register(ModuleName, 7, "epoch under dispute")
	ErrAlreadyInitialized = errorsmod.Register(ModuleName, 8, "account already initialized")
	ErrEpochMismatch      = errorsmod.Register(ModuleName, 9, "epoch id mismatch")
	ErrNotInitialized     = errorsmod.Register(ModuleName, 10, "account not initialized")

	ErrDeadlineExceeded = errorsmod.Register(ModuleName, 11, "proof submitted after the epoch deadline")

	ErrInsufficientFunds = errorsmod.Register(ModuleName, 12, "insufficient funds")
	ErrNothingToClaim    = errorsmod.Register(ModuleName, 13, "no pending rewards to claim")

	ErrCooldownActive = errorsmod.Register(ModuleName, 14, "unstake cooldown active")
	ErrCapExceeded    = errorsmod.Register(ModuleName, 15, "emission cap exceeded")

	ErrCodec              = errorsmod.Register(ModuleName, 16, "malformed record")
	ErrInvalidInstruction = errorsmod.Register(ModuleName, 17, "invalid instruction")
	ErrInvalidArgument    = errorsmod.Register(ModuleName, 18, "invalid argument")
	ErrTransferFailed     = errorsmod.Register(ModuleName, 19, "token transfer failed")
)

// Kind is the coarse class of a failure.
type Kind int

const (
	KindNone Kind = iota
	KindAuthorization
	KindAddressMismatch
	KindState
	KindDeadlineExceeded
	KindInsufficientFunds
	KindCooldownActive
	KindCapExceeded
	KindCodec
	KindInvalidInput
	KindTransfer
	KindInternal
)

var kindNames = [...]string{
	KindNone:              "none",
	KindAuthorization:     "authorization",
	KindAddressMismatch:   "address-mismatch",
	KindState:             "state",
	KindDeadlineExceeded:  "deadline-exceeded",
	KindInsufficientFunds: "insufficient-funds",
	KindCooldownActive:    "cooldown-active",
	KindCapExceeded:       "cap-exceeded",
	KindCodec:             "codec",
	KindInvalidInput:      "invalid-input",
	KindTransfer:          "transfer",
	KindInternal:          "internal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var kindOf = []struct {
	err  *errorsmod.Error
	kind Kind
}{
	{ErrMissingSignature, KindAuthorization},
	{ErrNotAdmin, KindAuthorization},
	{ErrAddressMismatch, KindAddressMismatch},
	{ErrIllegalOwner, KindAddressMismatch},
	{ErrInvalidStatus, KindState},
	{ErrUnderDispute, KindState},
	{ErrAlreadyInitialized, KindState},
	{ErrEpochMismatch, KindState},
	{ErrNotInitialized, KindState},
	{ErrDeadlineExceeded, KindDeadlineExceeded},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrNothingToClaim, KindInsufficientFunds},
	{ErrCooldownActive, KindCooldownActive},
	{ErrCapExceeded, KindCapExceeded},
	{ErrCodec, KindCodec},
	{ErrInvalidInstruction, KindInvalidInput},
	{ErrInvalidArgument, KindInvalidInput},
	{ErrTransferFailed, KindTransfer},
}

// Classify maps err onto its Kind. Errors not raised by this package are KindInternal.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kindOf {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
