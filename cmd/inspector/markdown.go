package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// markdownRenderer renders the final report for the terminal.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer() (*markdownRenderer, error) {
	// Terminal width drives word wrapping, capped for readability.
	termWidth := 80
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width - 4
		if termWidth > 120 {
			termWidth = 120
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(termWidth),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &markdownRenderer{renderer: renderer}, nil
}

func (mr *markdownRenderer) Render(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	rendered, err := mr.renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}
