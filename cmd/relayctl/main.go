// Команда relayctl запрашивает служебный HTTP-интерфейс запущенного бота
// и печатает его состояние.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/term"
)

const usage = `Usage: relayctl [flags] <command>

Commands:
  health   check that the bot's HTTP server is up
  stats    print relay counters

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "relayctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("relayctl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	serverAddr := fs.String("server", "http://localhost:8080", "bot HTTP server address")
	asJSON := fs.Bool("json", false, "print raw JSON even on a terminal")
	timeout := fs.Duration("timeout", 5*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("exactly one command is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := newStatsClient(*serverAddr, &http.Client{})
	pretty := !*asJSON && isTerminal(out)

	switch cmd := fs.Arg(0); cmd {
	case "health":
		status, err := api.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, status)
		return nil
	case "stats":
		stats, err := api.Stats(ctx)
		if err != nil {
			return err
		}
		if pretty {
			return renderTable(out, stats)
		}
		return renderJSON(out, stats)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// isTerminal сообщает, подключен ли out к терминалу.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
