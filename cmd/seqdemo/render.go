package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

const opColumn = 16

// setupConsole switches colored output on or off.
func setupConsole(cfg *Config, w io.Writer) {
	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		_, ok := terminalFd(w)
		color.NoColor = !ok
	}
}

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// terminalWidth returns the width of the terminal w writes to, or 0 if w
// is not a terminal.
func terminalWidth(w io.Writer) int {
	fd, ok := terminalFd(w)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func renderText(w io.Writer, results []result, width int) {
	opColor := color.New(color.FgCyan)
	outColor := color.New(color.FgGreen, color.Bold)
	errColor := color.New(color.FgRed)
	for _, res := range results {
		fmt.Fprintf(w, "%3d  ", res.step)
		opColor.Fprintf(w, "%-*s", opColumn, res.op)
		if res.err != nil {
			errColor.Fprintf(w, "  %v\n", res.err)
			continue
		}
		if res.output != "" {
			outColor.Fprintf(w, "  = %-6s", res.output)
		} else {
			fmt.Fprintf(w, "  %-8s", "")
		}
		fmt.Fprintln(w, clip(res.sequence, width-5-opColumn-10))
	}
}

// clip shortens s to at most n bytes. n <= 0 means no limit.
func clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n < 4 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func renderTable(w io.Writer, results []result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "operation", "result", "sequence"})
	for _, res := range results {
		out := res.output
		if res.err != nil {
			out = res.err.Error()
		}
		tw.AppendRow(table.Row{res.step, res.op, out, res.sequence})
	}
	tw.Render()
}
