// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the live session state and enforces its
// invariants: at least one chat always exists, the current-chat pointer
// always references a real chat, message lists are append-only, and
// every mutation is persisted in full before the operation returns.
//
// The UI layer reads from the store and dispatches mutations into it;
// it never touches model.State directly.
package store
