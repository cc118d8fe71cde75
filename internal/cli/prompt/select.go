// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector asks the user to pick one of several labelled choices by number.
// It works without a TTY, which makes it the fallback for piped input.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts with title and returns the index of the chosen label.
//
// Returns:
//   - ErrNoChoices if labels is empty
//   - 0 without prompting if only one label exists
//   - the selected index (empty input picks the first)
//   - ErrInvalidSelection if the selection is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, labels []string) (int, error) {
	if len(labels) == 0 {
		return -1, ErrNoChoices
	}
	if len(labels) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, l := range labels {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, l)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return -1, errors.Wrap(err, "reading selection")
		}
		// EOF with no text means the user closed input
		if strings.TrimSpace(input) == "" {
			return -1, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return -1, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(labels) {
		return -1, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(labels))
	}

	return selection - 1, nil
}
