package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/abiosoft/ishell"

	"github.com/lvdlvd/sysvread/detect"
	"github.com/lvdlvd/sysvread/fsys/sysv"
)

type shellCommand struct {
	name string
	help string
	run  func(args []string) error
}

// shellCommands returns the commands of the interactive shell. They all
// write to out.
func shellCommands(f *sysv.FS, fsType detect.Type, defaults LsOptions, out io.Writer) []shellCommand {
	return []shellCommand{
		{
			name: "info",
			help: "print the superblock",
			run: func([]string) error {
				return Info(f, fsType, out)
			},
		},
		{
			name: "ls",
			help: "list the root directory: ls [-l] [-a]",
			run: func(args []string) error {
				fs := flag.NewFlagSet("ls", flag.ContinueOnError)
				fs.SetOutput(out)
				long := fs.Bool("l", defaults.Long, "use long listing format")
				all := fs.Bool("a", defaults.All, `show "." and ".."`)
				if err := fs.Parse(args); err != nil {
					return err
				}
				return Ls(f, out, LsOptions{Long: *long, All: *all})
			},
		},
		{
			name: "stat",
			help: "show the inode of a root entry: stat <name>",
			run: func(args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("stat requires a name argument")
				}
				return Stat(f, args[0], out)
			},
		},
	}
}

// NewShell returns an interactive shell over f.
func NewShell(f *sysv.FS, fsType detect.Type, defaults LsOptions, out io.Writer) *ishell.Shell {
	sh := ishell.New()
	sh.SetPrompt(fmt.Sprintf("%s:/ > ", f.Superblock().Name()))

	for _, sc := range shellCommands(f, fsType, defaults, out) {
		sh.AddCmd(&ishell.Cmd{
			Name: sc.name,
			Help: sc.help,
			Func: func(c *ishell.Context) {
				if err := sc.run(c.Args); err != nil {
					c.Err(err)
				}
			},
		})
	}
	return sh
}
