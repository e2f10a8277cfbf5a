package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/lvdlvd/sysvread/config"
)

// Env is passed to every subcommand's Execute as its first argument.
type Env struct {
	Config *config.Config
	Log    *logrus.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func envFrom(args []any) *Env {
	return args[0].(*Env)
}

func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.Stderr, "sysvread: %v\n", err)
	return subcommands.ExitFailure
}

// InfoCmd implements subcommands.Command for the "info" command.
type InfoCmd struct{}

// Name implements subcommands.Command.
func (*InfoCmd) Name() string { return "info" }

// Synopsis implements subcommands.Command.
func (*InfoCmd) Synopsis() string { return "prints the superblock of an s5 image" }

// Usage implements subcommands.Command.
func (*InfoCmd) Usage() string { return "info <image>\n" }

// SetFlags implements subcommands.Command.
func (*InfoCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*InfoCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	filesystem, fsType, err := Open(f.Arg(0), env.Config, env.Log)
	if err != nil {
		return env.fail(err)
	}
	defer filesystem.Close()

	if err := Info(filesystem, fsType, env.Stdout); err != nil {
		return env.fail(err)
	}
	return subcommands.ExitSuccess
}

// LsCmd implements subcommands.Command for the "ls" command.
type LsCmd struct {
	long        bool
	all         bool
	skipUnused  bool
	countBySize bool
	parallel    int
}

// Name implements subcommands.Command.
func (*LsCmd) Name() string { return "ls" }

// Synopsis implements subcommands.Command.
func (*LsCmd) Synopsis() string { return "lists the root directory of an s5 image" }

// Usage implements subcommands.Command.
func (*LsCmd) Usage() string { return "ls [flags] <image>\n" }

// SetFlags implements subcommands.Command.
func (l *LsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&l.long, "l", false, "use long listing format")
	f.BoolVar(&l.all, "a", false, `show "." and ".."`)
	f.BoolVar(&l.skipUnused, "skip-unused", false, "hide slots whose inode number is 0")
	f.BoolVar(&l.countBySize, "count-by-size", false, "size the last directory block by the inode size")
	f.IntVar(&l.parallel, "parallel", 0, "resolve up to N entries concurrently")
}

// Execute implements subcommands.Command.Execute.
func (l *LsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	conf := *env.Config
	conf.SkipUnused = conf.SkipUnused || l.skipUnused
	conf.CountBySize = conf.CountBySize || l.countBySize
	if l.parallel != 0 {
		conf.Parallel = l.parallel
	}

	filesystem, _, err := Open(f.Arg(0), &conf, env.Log)
	if err != nil {
		return env.fail(err)
	}
	defer filesystem.Close()

	opts := LsOptions{Long: l.long, All: l.all || conf.ShowAll}
	if err := Ls(filesystem, env.Stdout, opts); err != nil {
		return env.fail(err)
	}
	return subcommands.ExitSuccess
}

// StatCmd implements subcommands.Command for the "stat" command.
type StatCmd struct{}

// Name implements subcommands.Command.
func (*StatCmd) Name() string { return "stat" }

// Synopsis implements subcommands.Command.
func (*StatCmd) Synopsis() string { return "shows the inode of a root directory entry" }

// Usage implements subcommands.Command.
func (*StatCmd) Usage() string { return "stat <image> <name>\n" }

// SetFlags implements subcommands.Command.
func (*StatCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*StatCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	filesystem, _, err := Open(f.Arg(0), env.Config, env.Log)
	if err != nil {
		return env.fail(err)
	}
	defer filesystem.Close()

	if err := Stat(filesystem, f.Arg(1), env.Stdout); err != nil {
		return env.fail(err)
	}
	return subcommands.ExitSuccess
}

// ShellCmd implements subcommands.Command for the "shell" command.
type ShellCmd struct{}

// Name implements subcommands.Command.
func (*ShellCmd) Name() string { return "shell" }

// Synopsis implements subcommands.Command.
func (*ShellCmd) Synopsis() string { return "explores an s5 image interactively" }

// Usage implements subcommands.Command.
func (*ShellCmd) Usage() string { return "shell <image>\n" }

// SetFlags implements subcommands.Command.
func (*ShellCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*ShellCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	filesystem, fsType, err := Open(f.Arg(0), env.Config, env.Log)
	if err != nil {
		return env.fail(err)
	}
	defer filesystem.Close()

	sh := NewShell(filesystem, fsType, LsOptions{All: env.Config.ShowAll}, env.Stdout)
	sh.Run()
	sh.Close()
	return subcommands.ExitSuccess
}
