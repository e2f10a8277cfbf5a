// sysvread - Read UNIX System V (s5) filesystem images from the AT&T 3B2
//
// Usage:
//
//	sysvread [-config file] [-debug] info <image>
//	sysvread [-config file] [-debug] ls [-l] [-a] [-skip-unused] [-count-by-size] [-parallel n] <image>
//	sysvread [-config file] [-debug] stat <image> <name>
//	sysvread [-config file] [-debug] shell <image>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/lvdlvd/sysvread/cmd"
	"github.com/lvdlvd/sysvread/config"
)

var (
	configPath = flag.String("config", "", "path to a TOML config file")
	debug      = flag.Bool("debug", false, "log the directory walk to stderr")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&cmd.InfoCmd{}, "")
	subcommands.Register(&cmd.LsCmd{}, "")
	subcommands.Register(&cmd.StatCmd{}, "")
	subcommands.Register(&cmd.ShellCmd{}, "")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysvread: %v\n", err)
		os.Exit(1)
	}
	conf.Debug = conf.Debug || *debug

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if conf.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	env := &cmd.Env{Config: conf, Log: log, Stdout: os.Stdout, Stderr: os.Stderr}
	os.Exit(int(subcommands.Execute(context.Background(), env)))
}
