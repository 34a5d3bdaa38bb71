package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/moviemate/app"
	"github.com/s0up4200/moviemate/filter"
)

const shellHelp = `Commands:
  <text> | search <text>     search movies (empty: popular movies)
  clear                      clear the input, back to the previous search
  popular | home             popular movies | start over
  go <view>                  search, collection or recommendations
  collection | recommend     switch view
  add <id> | remove <id>     change your collection
  watched <id> | unwatched <id>
  rate <id> <n> | note <id> <text>
  theme | lang               toggle theme or language
  filter [expr] | preset <name>
  help | quit
`

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse movies interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := controller.Init(ctx); err != nil {
			return err
		}
		return runShell(ctx, os.Stdin, screen, controller, logger)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type console interface {
	Prompt() string
	Printf(format string, args ...any)
}

type dispatcher interface {
	Dispatch(ctx context.Context, ev app.Event) error
}

// runShell reads commands from in until EOF, quit or a cancelled context
func runShell(ctx context.Context, in io.Reader, con console, d dispatcher, log zerolog.Logger) error {
	scanner := bufio.NewScanner(in)

	for {
		con.Printf("%s", con.Prompt())
		if !scanner.Scan() {
			con.Printf("\n")
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			con.Printf("%s", shellHelp)
			continue
		}

		ev, ok, err := app.ParseEvent(line)
		if err != nil {
			con.Printf("✗ %v\n", err)
			continue
		}
		if !ok {
			continue
		}

		if err := d.Dispatch(ctx, ev); err != nil {
			log.Debug().Err(err).Str("event", string(ev.Kind)).Msg("Shell command failed")
			if shownToUser(err) {
				con.Printf("✗ %v\n", err)
			}
		}
	}
}

// shownToUser reports whether err still needs printing. Request and
// collection failures already produced a translated notification.
func shownToUser(err error) bool {
	var compileErr *filter.CompilationError
	switch {
	case errors.As(err, &compileErr),
		errors.Is(err, filter.ErrUnknownPreset),
		errors.Is(err, app.ErrEmptyUpdate),
		errors.Is(err, app.ErrNoUser):
		return true
	}
	return false
}
