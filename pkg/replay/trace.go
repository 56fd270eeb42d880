package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-relbuf/pkg/addedrelations"
)

// Trace is the outcome of a replay
type Trace struct {
	Session string
	Script  string
	Steps   []StepResult
	Stats   addedrelations.Stats
}

// StepResult is what one step observed
type StepResult struct {
	Index  int
	Op     string
	Arg    string
	Output string
}

func (r StepResult) String() string {
	if r.Arg == "" {
		return fmt.Sprintf("%d. %s -> %s", r.Index, r.Op, r.Output)
	}
	return fmt.Sprintf("%d. %s %s -> %s", r.Index, r.Op, r.Arg, r.Output)
}

// Render writes the trace as text. The session ID is left out so that the
// output of a script is reproducible.
func (t *Trace) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "script: %s\n", t.Script)
	for _, step := range t.Steps {
		fmt.Fprintln(bw, step.String())
	}
	fmt.Fprintf(bw, "stats: added=%d removed=%d compactions=%d discarded=%d\n",
		t.Stats.Added, t.Stats.Removed, t.Stats.Compactions, t.Stats.Discarded)
	return bw.Flush()
}

func formatNames(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}
