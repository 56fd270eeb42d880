// Command relbuf replays scripted transaction events against an
// added-relations buffer and prints what each step observed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "relbuf: %v\n", err)
		os.Exit(1)
	}
}
