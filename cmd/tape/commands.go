// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tapedrive/tape/api/utils"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/tape"
)

// buildFunc makes the call to sign on behalf of signer.
type buildFunc func(ctx *cli.Context, signer tape.Address) (*call, error)

func instructionCommand(name, usage string, flags []cli.Flag, build buildFunc) cli.Command {
	return cli.Command{
		Name:  name,
		Usage: usage,
		Flags: append(flags, signingFlags...),
		Action: func(ctx *cli.Context) error {
			if err := initLogger(ctx); err != nil {
				return err
			}
			return runInstruction(ctx, build)
		},
	}
}

func runInstruction(ctx *cli.Context, build buildFunc) error {
	signer, key, err := signerKey(ctx)
	if err != nil {
		return err
	}
	c, err := build(ctx, signer)
	if err != nil {
		return err
	}
	trx, err := c.sign(key)
	if err != nil {
		return err
	}
	logger.Debug("submitting", "tx", trx.ID(), "instruction", c.ins.Tag(), "signer", signer)

	if apiURL := ctx.String(apiURLFlag.Name); apiURL != "" {
		receipt, err := submitRemote(context.Background(), apiURL, trx)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, receipt)
	}

	receipt, err := submitLocal(ctx.String(dataDirFlag.Name), dbOptions(ctx), trx)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, receipt)
}

func instructionCommands() []cli.Command {
	return []cli.Command{
		instructionCommand("register", "register a data object owned by the signer",
			[]cli.Flag{objectIDFlag, hashFlag, proofTypeFlag, sizeFlag, retentionFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				id, err := idFlag(ctx, objectIDFlag)
				if err != nil {
					return nil, err
				}
				commitment, err := hashArg(ctx)
				if err != nil {
					return nil, err
				}
				return registerObjectCall(signer, id, commitment,
					reward.ProofType(ctx.Uint(proofTypeFlag.Name)),
					ctx.Uint64(sizeFlag.Name),
					ctx.Uint64(retentionFlag.Name))
			}),
		instructionCommand("create-epoch", "open a proof round against an object",
			[]cli.Flag{ownerFlag, objectIDFlag, epochIDFlag, nonceFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				owner, err := addressFlag(ctx, ownerFlag)
				if err != nil {
					return nil, err
				}
				objectID, epochID, err := epochFlags(ctx)
				if err != nil {
					return nil, err
				}
				return createEpochCall(signer, owner, objectID, epochID, ctx.Uint64(nonceFlag.Name))
			}),
		instructionCommand("submit-proof", "submit a proof for an open epoch as the signer",
			[]cli.Flag{objectIDFlag, epochIDFlag, hashFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				objectID, epochID, err := epochFlags(ctx)
				if err != nil {
					return nil, err
				}
				proof, err := hashArg(ctx)
				if err != nil {
					return nil, err
				}
				return submitProofCall(signer, objectID, epochID, proof)
			}),
		instructionCommand("challenge", "dispute the proof submitted for an epoch",
			[]cli.Flag{objectIDFlag, epochIDFlag, minerFlag, hashFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				objectID, epochID, err := epochFlags(ctx)
				if err != nil {
					return nil, err
				}
				solver, err := addressFlag(ctx, minerFlag)
				if err != nil {
					return nil, err
				}
				evidence, err := hashArg(ctx)
				if err != nil {
					return nil, err
				}
				return challengeProofCall(signer, solver, objectID, epochID, evidence)
			}),
		instructionCommand("finalize", "pay the solver of a submitted epoch",
			[]cli.Flag{objectIDFlag, epochIDFlag, minerFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				objectID, epochID, err := epochFlags(ctx)
				if err != nil {
					return nil, err
				}
				solver, err := addressFlag(ctx, minerFlag)
				if err != nil {
					return nil, err
				}
				return finalizeEpochCall(signer, solver, objectID, epochID)
			}),
		instructionCommand("stake", "lock tokens from the signer's wallet",
			[]cli.Flag{amountFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				return stakeCall(signer, ctx.Uint64(amountFlag.Name))
			}),
		instructionCommand("unstake", "release stake after the cooldown",
			[]cli.Flag{amountFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				return unstakeCall(signer, ctx.Uint64(amountFlag.Name))
			}),
		instructionCommand("claim", "withdraw pending rewards",
			nil,
			func(_ *cli.Context, signer tape.Address) (*call, error) {
				return claimCall(signer)
			}),
		instructionCommand("slash", "cut a miner's stake, signed by the admin",
			[]cli.Flag{minerFlag, amountFlag},
			func(ctx *cli.Context, signer tape.Address) (*call, error) {
				miner, err := addressFlag(ctx, minerFlag)
				if err != nil {
					return nil, err
				}
				return slashCall(signer, miner, ctx.Uint64(amountFlag.Name))
			}),
	}
}

func addressFlag(ctx *cli.Context, flag cli.StringFlag) (tape.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return tape.Address{}, errors.Errorf("missing --%s", flag.Name)
	}
	addr, err := tape.ParseAddress(s)
	if err != nil {
		return tape.Address{}, errors.WithMessage(err, flag.Name)
	}
	return addr, nil
}

func idFlag(ctx *cli.Context, flag cli.StringFlag) (*uint256.Int, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return nil, errors.Errorf("missing --%s", flag.Name)
	}
	return utils.ParseID(flag.Name, s)
}

func epochFlags(ctx *cli.Context) (objectID, epochID *uint256.Int, err error) {
	if objectID, err = idFlag(ctx, objectIDFlag); err != nil {
		return nil, nil, err
	}
	if epochID, err = idFlag(ctx, epochIDFlag); err != nil {
		return nil, nil, err
	}
	return objectID, epochID, nil
}

func hashArg(ctx *cli.Context) (tape.Bytes32, error) {
	s := ctx.String(hashFlag.Name)
	if s == "" {
		return tape.Bytes32{}, errors.Errorf("missing --%s", hashFlag.Name)
	}
	h, err := tape.ParseBytes32(s)
	if err != nil {
		return tape.Bytes32{}, errors.WithMessage(err, hashFlag.Name)
	}
	return h, nil
}
