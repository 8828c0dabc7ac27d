// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

// RegisterObject records a data object. The record is never rewritten.
func (r *Reward) RegisterObject(accs *RegisterObjectAccounts, args *RegisterObject) error {
	if err := r.requireSigner(accs.Owner); err != nil {
		return err
	}
	if err := requireID(args.ObjectID); err != nil {
		return err
	}
	bump, err := r.requireDerived(accs.Object, ObjectSeeds(accs.Owner, args.ObjectID))
	if err != nil {
		return err
	}
	if err := r.requireEmpty(accs.Object); err != nil {
		return err
	}

	obj := &ObjectRecord{
		Owner:           accs.Owner,
		Commitment:      args.Commitment,
		ProofType:       args.ProofType,
		Size:            args.Size,
		CreatedAt:       r.now(),
		RetentionEpochs: args.RetentionEpochs,
		Bump:            bump,
	}
	if err := write(r, accs.Object, obj); err != nil {
		return err
	}
	r.emit("ObjectRegistered", args.ObjectID)
	return nil
}
