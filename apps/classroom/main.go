// Command classroom is a line-oriented front end to the classroom store.
//
// Without arguments it reads commands from stdin; otherwise the arguments
// are run as a single command against a freshly seeded store.
package main

import (
	"fmt"
	"os"

	"github.com/einsteinium08/class-bloom-space/storage/database"
)

func main() {
	err := newContainer().Invoke(func(cli *commandLine, store *database.Store, closeLog logCloser) error {
		defer func() {
			_ = store.Close()
			_ = closeLog()
		}()

		if len(os.Args) > 1 {
			return cli.run(os.Args[1:])
		}
		return cli.serve(os.Stdin, isTerminalFunc(int(os.Stdin.Fd())))
	})

	switch err {
	case nil, errQuit:
	case errHelp:
		os.Exit(1)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		os.Exit(1)
	}
}
