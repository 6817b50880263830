package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mchmarny/sidenav/pkg/logger"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/sidebar"
)

const (
	name = "sidenav"

	envConfig = "SIDENAV_CONFIG"
	envPort   = "SIDENAV_PORT"

	defaultConfig = "sidenav.yaml"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

const usage = `usage: sidenav <command> [flags]

commands:
  validate   load the navigation config and report errors
  render     print the navigation rendered for a location
  serve      serve the navigation API and a sidebar preview
  version    print the version
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.SetDefaultLogger(name, version)

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command in args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "validate":
		err = validate(args[1:], stdout, stderr)
	case "render":
		err = render(args[1:], stdout, stderr)
	case "serve":
		err = serve(ctx, args[1:], stderr)
	case "version":
		fmt.Fprintf(stdout, "%s %s (commit: %s, built: %s)\n", name, version, commit, date)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

var errUsage = errors.New("usage error")

func newFlagSet(cmd string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name+" "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := fs.String("config", envOr(envConfig, defaultConfig), "Path to the navigation config file (env "+envConfig+")")
	return fs, cfg
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

func validate(args []string, stdout, stderr io.Writer) error {
	fs, cfg := newFlagSet("validate", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}

	m, err := menu.Load(*cfg)
	if err != nil {
		return err
	}

	links, categories := 0, 0
	if err := m.Walk(func(_ string, item menu.Item) error {
		if item.IsLink() {
			links++
		} else {
			categories++
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to walk navigation config: %w", err)
	}

	fmt.Fprintf(stdout, "%s: ok (%d links, %d categories)\n", *cfg, links, categories)
	return nil
}

func render(args []string, stdout, stderr io.Writer) error {
	fs, cfg := newFlagSet("render", stderr)
	location := fs.String("location", "/", "Location to render the navigation for")
	format := fs.String("format", "tree", "Output format: tree or json")
	if err := parse(fs, args); err != nil {
		return err
	}

	m, err := menu.Load(*cfg)
	if err != nil {
		return err
	}

	r, err := menu.NewRenderer(m)
	if err != nil {
		return err
	}

	nav := r.Navigation(*location)

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nav)
	case "tree":
		printTree(stdout, nav.Items, 0)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return errUsage
	}
}

func printTree(w io.Writer, nodes []menu.RenderNode, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, n := range nodes {
		var b strings.Builder
		b.WriteString(indent)

		switch {
		case n.Kind == menu.KindLink:
			b.WriteString("- ")
		case !n.Expandable:
			b.WriteString("= ")
		case n.Collapsed:
			b.WriteString("+ ")
		default:
			b.WriteString("v ")
		}

		if n.Icon != nil {
			b.WriteString(n.Icon.Text + " ")
		}
		b.WriteString(n.Label)

		if n.Kind == menu.KindLink {
			b.WriteString(" (" + n.Target + ")")
			if !n.Internal {
				b.WriteString(" [external]")
			}
		}
		if n.Active {
			b.WriteString(" [active]")
		}

		fmt.Fprintln(w, b.String())
		printTree(w, n.Children, depth+1)
	}
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs, cfg := newFlagSet("serve", stderr)
	port := fs.Int("port", envIntOr(envPort, server.DefaultPort), "Port to run the server on (env "+envPort+")")
	if err := parse(fs, args); err != nil {
		return err
	}

	m, err := menu.Load(*cfg)
	if err != nil {
		return err
	}

	r, err := menu.NewRenderer(m, menu.WithMetrics(metric.NewMetrics(version)))
	if err != nil {
		return err
	}

	slog.Info("starting sidenav",
		"config", *cfg,
		"title", m.Title,
		"commit", commit,
		"date", date,
	)

	return r.Run(ctx,
		server.WithPort(*port),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelError, false)),
		server.WithHandler("/*", sidebar.Handler(r)),
	)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer env var", "key", key, "value", v)
		return fallback
	}
	return n
}
