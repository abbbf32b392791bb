package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/codalab/lazyworksheets/internal/models"
)

// WorksheetSelector picks one worksheet from a listing.
type WorksheetSelector func(worksheets []models.Worksheet) (*models.Worksheet, error)

// fzfLookPath is a package-level variable for exec.LookPath, replaceable in tests.
var fzfLookPath = exec.LookPath

// NewSelector returns a selector that pipes worksheets through fzf when it
// is installed and falls back to a numbered prompt otherwise.
func NewSelector(stdin io.Reader, stderr io.Writer) WorksheetSelector {
	return func(worksheets []models.Worksheet) (*models.Worksheet, error) {
		if _, err := fzfLookPath("fzf"); err == nil {
			return selectWorksheetWithFzf(worksheets, stderr)
		}
		return selectWorksheetWithPrompt(worksheets, stdin, stderr)
	}
}

func selectorLine(ws models.Worksheet) string {
	name := strings.Join(strings.Fields(ws.Name), " ")
	line := fmt.Sprintf("%s\t%s", ws.UUID, name)
	if byline := ws.Byline(); byline != "" {
		line += "  (" + byline + ")"
	}
	return line
}

func selectWorksheetWithFzf(worksheets []models.Worksheet, stderr io.Writer) (*models.Worksheet, error) {
	lookup := make(map[string]int, len(worksheets))
	lines := make([]string, 0, len(worksheets))
	for i, ws := range worksheets {
		lookup[ws.UUID] = i
		lines = append(lines, selectorLine(ws))
	}

	cmd := exec.Command("fzf",
		"--prompt", "Select worksheet> ",
		"--header", "Worksheet selection (type to filter)",
		"--delimiter", "\t",
		"--with-nth", "2..",
	)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("worksheet selection cancelled")
	}
	return pickFromLine(worksheets, lookup, strings.TrimSpace(string(out)))
}

func pickFromLine(worksheets []models.Worksheet, lookup map[string]int, line string) (*models.Worksheet, error) {
	if line == "" {
		return nil, fmt.Errorf("no worksheet selected")
	}
	uuid, _, _ := strings.Cut(line, "\t")
	idx, ok := lookup[uuid]
	if !ok {
		return nil, fmt.Errorf("worksheet %s not found", uuid)
	}
	return &worksheets[idx], nil
}

// selectWorksheetWithPrompt displays a numbered list and reads the user's choice.
func selectWorksheetWithPrompt(worksheets []models.Worksheet, stdin io.Reader, stderr io.Writer) (*models.Worksheet, error) {
	fmt.Fprintf(stderr, "\nWorksheets:\n\n")
	for i, ws := range worksheets {
		fmt.Fprintf(stderr, "  [%d] %s\n", i+1, strings.ReplaceAll(selectorLine(ws), "\t", "  "))
	}
	fmt.Fprintf(stderr, "\nSelect worksheet [1-%d]: ", len(worksheets))

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return nil, fmt.Errorf("worksheet selection cancelled")
	}

	text := strings.TrimSpace(scanner.Text())
	if text == "" {
		return nil, fmt.Errorf("no worksheet selected")
	}

	idx, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %q", text)
	}
	if idx < 1 || idx > len(worksheets) {
		return nil, fmt.Errorf("selection out of range: %d (must be 1-%d)", idx, len(worksheets))
	}
	return &worksheets[idx-1], nil
}

// NewPromptConfirmer asks on stderr and reads the answer from stdin. Only
// "y" and "yes" count as consent.
func NewPromptConfirmer(stdin io.Reader, stderr io.Writer) Confirmer {
	scanner := bufio.NewScanner(stdin)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(stderr, "%s [y/N]: ", prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			return false, ErrAborted
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// NewStdioPromptConfirmer is a convenience wrapper using os.Stdin/os.Stderr.
func NewStdioPromptConfirmer() Confirmer {
	return NewPromptConfirmer(os.Stdin, os.Stderr)
}
