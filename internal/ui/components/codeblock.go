// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// HighlightCodeBlocks finds fenced code blocks (```lang ... ```) in
// content and replaces their bodies with syntax-highlighted terminal
// output. Text outside fences passes through untouched. A fence that
// never closes is left as-is.
func HighlightCodeBlocks(content, styleName string) string {
	if !strings.Contains(content, "```") {
		return content
	}

	var out strings.Builder
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}

		lang := strings.TrimPrefix(strings.TrimSpace(line), "```")

		// Collect the fenced body.
		var body []string
		closed := false
		j := i + 1
		for ; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "```" {
				closed = true
				break
			}
			body = append(body, lines[j])
		}

		if !closed {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}

		if lang != "" {
			out.WriteString("  " + lang + "\n")
		}
		out.WriteString(highlightCode(strings.Join(body, "\n"), lang, styleName))
		out.WriteString("\n")
		i = j
	}

	return strings.TrimSuffix(out.String(), "\n")
}

// highlightCode applies syntax highlighting using the chroma library.
// Any failure falls back to the raw code.
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
