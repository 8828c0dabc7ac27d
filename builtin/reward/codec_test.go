// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapedrive/tape/tape"
)

func newFuzzer() *fuzz.Fuzzer {
	return fuzz.New().NilChance(0.3).Funcs(
		func(p **uint256.Int, c fuzz.Continue) {
			v := new(uint256.Int).SetUint64(c.Uint64())
			*p = v.Lsh(v, uint(c.Intn(65)))
		},
		func(s *EpochStatus, c fuzz.Continue) {
			*s = EpochStatus(c.Intn(int(EpochFinalized) + 1))
		},
	)
}

func roundTrip[R Record](t *testing.T, rec, out R) {
	data, err := Encode(rec)
	require.NoError(t, err)
	require.NoError(t, Decode(data, out))
	assert.Equal(t, rec, out)
}

func TestRecordRoundTrip(t *testing.T) {
	f := newFuzzer()
	for range 200 {
		var (
			g GlobalState
			o ObjectRecord
			e EpochRecord
			m MinerAccount
		)
		f.Fuzz(&g)
		f.Fuzz(&o)
		f.Fuzz(&e)
		f.Fuzz(&m)
		roundTrip(t, &g, &GlobalState{})
		roundTrip(t, &o, &ObjectRecord{})
		roundTrip(t, &e, &EpochRecord{})
		roundTrip(t, &m, &MinerAccount{})
	}
}

func TestEpochRecordOptionalFields(t *testing.T) {
	solver := tape.BytesToAddress([]byte("solver"))
	for _, rec := range []*EpochRecord{
		{ObjectID: uint256.NewInt(42), EpochID: uint256.NewInt(1001)},
		{ObjectID: uint256.NewInt(42), EpochID: uint256.NewInt(1001), Solver: &solver, Status: EpochSubmitted},
		{ObjectID: uint256.NewInt(42), EpochID: uint256.NewInt(1001), Solver: &tape.Address{}, Challenger: &solver},
	} {
		roundTrip(t, rec, &EpochRecord{})
	}
}

func TestDecodeRejects(t *testing.T) {
	epoch, err := Encode(&EpochRecord{ObjectID: uint256.NewInt(1), EpochID: uint256.NewInt(2), Status: 9})
	require.NoError(t, err)
	wide, err := Encode(&EpochRecord{ObjectID: new(uint256.Int).Lsh(uint256.NewInt(1), 200), EpochID: uint256.NewInt(2)})
	require.NoError(t, err)
	miner, err := Encode(&MinerAccount{Stake: 1})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"kind only", []byte{kindEpoch}},
		{"wrong kind", miner},
		{"truncated", epoch[:len(epoch)-3]},
		{"unknown status", epoch},
		{"id wider than 128 bits", wide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(tt.data, &EpochRecord{})
			assert.ErrorIs(t, err, ErrCodec)
			assert.Equal(t, KindCodec, Classify(err))
		})
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	f := newFuzzer().NilChance(0)
	for range 50 {
		for _, ins := range []Instruction{
			new(Initialize), new(RegisterObject), new(CreateEpoch), new(SubmitProof), new(ChallengeProof),
			new(FinalizeEpoch), new(StakeTokens), new(UnstakeTokens), new(ClaimRewards), new(SlashMiner),
		} {
			f.Fuzz(ins)
			data, err := EncodeInstruction(ins)
			require.NoError(t, err)
			assert.Equal(t, byte(ins.Tag()), data[0])

			got, err := DecodeInstruction(data)
			require.NoError(t, err)
			assert.Equal(t, ins, got)
		}
	}
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "SubmitProof", TagSubmitProof.String())
	assert.Equal(t, "Tag(200)", Tag(200).String())
	assert.Equal(t, "Other(7)", ProofType(7).String())
	assert.Equal(t, "Challenged", EpochChallenged.String())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindInternal, Classify(assert.AnError))
	assert.Equal(t, KindAddressMismatch, Classify(ErrIllegalOwner))
	assert.Equal(t, "cooldown-active", KindCooldownActive.String())
}
