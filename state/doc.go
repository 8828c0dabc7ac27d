// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the accounts every instruction reads and writes.
//
// An account is an owner program plus opaque data. Changes are journaled in memory
// with checkpoints, so a failed instruction can be reverted, and are persisted
// through Stage and Commit into the kv store.
package state
