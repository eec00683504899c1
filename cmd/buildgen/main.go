// Command buildgen generates fluent builder companions for annotated Go
// structs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/syssam/buildgen/compiler/gen"
	"github.com/syssam/buildgen/compiler/gen/builder"
)

// version is set by the release build.
var version = "dev"

var cli struct {
	Generate generateCmd `cmd:"" default:"withargs" help:"Generate builders once."`
	Watch    watchCmd    `cmd:"" help:"Regenerate builders whenever the schema directory changes."`
	Version  versionCmd  `cmd:"" help:"Print the version."`
}

type generateCmd struct {
	Dir     string `arg:"" default:"." help:"Directory holding the annotated struct definitions."`
	Target  string `short:"t" placeholder:"DIR" help:"Output directory. Defaults to the schema directory."`
	Package string `short:"p" help:"Package name of the generated files. Defaults to the target's base name."`
	Config  string `short:"c" type:"existingfile" help:"YAML configuration file. Flags override file values."`
	Workers int    `help:"Parallel generation workers. Defaults to GOMAXPROCS."`
	NoCache bool   `help:"Disable the generation cache."`
}

func (c *generateCmd) config() (*gen.Config, error) {
	opts := []gen.Option{gen.WithCache(!c.NoCache)}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if c.Config != "" {
		return gen.ConfigFromFile(c.Config, opts...)
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Target == "" {
		cfg.Target = c.Dir
	}
	return cfg, nil
}

func (c *generateCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	return builder.Generate(context.Background(), c.Dir, cfg)
}

type watchCmd struct {
	generateCmd
	Debounce time.Duration `default:"200ms" help:"Quiet period before regenerating after a change."`
}

func (c *watchCmd) Run() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(c.Dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regen := func() {
		cfg, err := c.config()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if err := builder.Generate(ctx, c.Dir, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Fprintf(os.Stderr, "buildgen: regenerated %s\n", c.Dir)
	}
	regen()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if c.relevant(ev) {
				pending = time.After(c.Debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "buildgen: watch:", err)
		case <-pending:
			pending = nil
			regen()
		}
	}
}

// relevant filters the watcher stream down to source changes, skipping
// generated artifacts so writing them does not retrigger a run.
func (c *watchCmd) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !strings.HasSuffix(name, "_builder.go")
}

type versionCmd struct{}

func (versionCmd) Run() error {
	fmt.Println("buildgen " + version)
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("buildgen"),
		kong.Description("Generate fluent builder companions for annotated Go structs."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
