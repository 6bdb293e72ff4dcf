package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blackyblack/poker-contracts-sub001/src/cmd/hup/internal"
)

var (
	version = "unknown"
)

func init() {
	internal.HupCommands = []*internal.Command{
		internal.CmdKeygen,
		internal.CmdDomain,
		internal.CmdGenesis,
		internal.CmdDigest,
		internal.CmdSign,
		internal.CmdRecover,
		internal.CmdVerify,
		internal.CmdCommit,
		internal.CmdReveal,
		internal.CmdVersion,
		internal.CmdHelp,
	}
}

func main() {
	internal.Version = version

	flag.Usage = internal.MainUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		internal.MainUsage()
	}

	if args[0] != "version" && args[0] != "help" {
		internal.PrintVersion(true)
	}

	for _, cmd := range internal.HupCommands {
		if cmd.Name() != args[0] {
			continue
		}
		if !cmd.Runnable() {
			continue
		}
		var allFlags flag.FlagSet
		allFlags.Usage = func() { cmd.Usage() }
		cmd.Flag.VisitAll(func(flag *flag.Flag) {
			allFlags.Var(flag.Value, flag.Name, flag.Usage)
		})
		cmd.CommonFlag.VisitAll(func(flag *flag.Flag) {
			allFlags.Var(flag.Value, flag.Name, flag.Usage)
		})
		cmd.DebugFlag.VisitAll(func(flag *flag.Flag) {
			allFlags.Var(flag.Value, flag.Name, flag.Usage)
		})
		allFlags.Parse(args[1:])
		args = allFlags.Args()
		cmd.Run(cmd, args)
		internal.Exit()
		return
	}
	fmt.Fprintf(os.Stderr, "hup %s: unknown command\nRun 'hup help' for usage.\n", args[0])
	internal.SetExitStatus(2)
	internal.Exit()
}
