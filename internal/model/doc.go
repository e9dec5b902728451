// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data types for plume: chats, messages,
// and the session state that binds them together.
//
// The types here are plain data with JSON tags matching the persisted
// state blob. Mutation policy (which operations persist, how the
// current chat is selected) lives in the store package; rendering
// concerns live under ui.
package model
