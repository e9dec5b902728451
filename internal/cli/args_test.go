// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgParserSubcommandAndPositionals(t *testing.T) {
	args := NewArgParser([]string{"ask", "what", "is", "go"})

	assert.Equal(t, "ask", args.Subcommand())
	assert.Equal(t, "what is go", args.JoinFrom(1))
}

func TestArgParserFlags(t *testing.T) {
	args := NewArgParser([]string{"ask", "--server", "http://x:5000", "question", "--json"})

	assert.Equal(t, "http://x:5000", args.Flag("server"))
	assert.True(t, args.BoolFlag("json"))
	assert.Equal(t, "question", args.JoinFrom(1))
}

func TestArgParserEqualsFormat(t *testing.T) {
	args := NewArgParser([]string{"--config=/tmp/c.toml", "--verbose=true"})

	assert.Equal(t, "/tmp/c.toml", args.Flag("config"))
	assert.True(t, args.BoolFlag("verbose"))
}

func TestArgParserDefaults(t *testing.T) {
	args := NewArgParser(nil)

	assert.Empty(t, args.Subcommand())
	assert.Equal(t, "fallback", args.FlagOrDefault("missing", "fallback"))
	assert.False(t, args.BoolFlag("missing"))
	assert.Empty(t, args.PositionalFrom(3))
}
