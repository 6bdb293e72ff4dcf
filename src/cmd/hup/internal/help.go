package internal

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"text/tabwriter"
)

// Version is set by package main at link time.
var Version = "unknown"

// CmdVersion is hup version command entity.
var CmdVersion = newCommand("hup version", "show build version information", `
Version prints the hup version, the module version it was built from and the Go toolchain.
`, "")

// CmdHelp is hup help command entity.
var CmdHelp = newCommand("hup help [command]", "show help of sub commands", `
Use "hup help <command>" for more information about a command.
`, "")

// helpSections groups the commands in the main usage by what they work on.
var helpSections = []struct {
	title string
	names []string
}{
	{"Keys and domain", []string{"keygen", "domain", "genesis"}},
	{"Signing", []string{"digest", "sign", "recover"}},
	{"Verification", []string{"verify"}},
	{"Card commitments", []string{"commit", "reveal"}},
}

func init() {
	CmdVersion.Run = runVersion
	CmdHelp.Run = runHelp
}

// PrintVersion returns the version line and logs it at debug level when printLog is set.
func PrintVersion(printLog bool) string {
	module := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		module = bi.Main.Version
	}
	version := fmt.Sprintf("hup %s (module %s) %s/%s %s\n",
		Version, module, runtime.GOOS, runtime.GOARCH, runtime.Version())
	if printLog {
		ConsoleLog.Debugf("hup build: %s", version)
	}
	return version
}

func runVersion(cmd *Command, args []string) {
	fmt.Print(PrintVersion(false))
}

func findCommand(name string) *Command {
	for _, c := range HupCommands {
		if c.Name() == name && c.Runnable() {
			return c
		}
	}
	return nil
}

func printFlags(w io.Writer, fs *flag.FlagSet) {
	empty := true
	fs.VisitAll(func(*flag.Flag) { empty = false })
	if empty {
		return
	}
	if fs.Name() != "" {
		fmt.Fprintf(w, "\n%s:\n", fs.Name())
	}
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintf(os.Stdout, "usage: %s\n", cmd.UsageLine)
	fmt.Fprint(os.Stdout, cmd.Long)
	for _, fs := range []*flag.FlagSet{cmd.Flag, cmd.CommonFlag, cmd.DebugFlag} {
		if fs != nil {
			printFlags(os.Stdout, fs)
		}
	}
}

func runHelp(cmd *Command, args []string) {
	if len(args) != 1 {
		if len(args) > 1 {
			SetExitStatus(2)
		}
		MainUsage()
	}
	if c := findCommand(args[0]); c != nil {
		printCommandHelp(c)
		return
	}
	fmt.Fprintf(os.Stderr, "hup help %s: unknown command\n", args[0])
	SetExitStatus(2)
	MainUsage()
}

// writeCommandList writes the runnable commands grouped by helpSections, unlisted ones last.
func writeCommandList(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	listed := map[string]bool{}
	for _, s := range helpSections {
		fmt.Fprintf(tw, "%s:\n", s.title)
		for _, n := range s.names {
			if c := findCommand(n); c != nil {
				listed[n] = true
				fmt.Fprintf(tw, "    %s\t%s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw, "Other:")
	for _, c := range HupCommands {
		if !listed[c.Name()] && c.Runnable() {
			fmt.Fprintf(tw, "    %s\t%s\n", c.Name(), c.Short)
		}
	}
	_ = tw.Flush()
}

// MainUsage prints hup base help and exits.
func MainUsage() {
	out := os.Stdout
	fmt.Fprint(out, `hup signs and verifies heads-up poker channel messages.

Usage:

    hup <command> [params] [arguments]

`)
	writeCommandList(out)

	addCommonFlags(CmdHelp)
	addConfigFlag(CmdHelp)
	fmt.Fprint(out, "\nParams shared by the commands (except help and version):\n")
	printFlags(out, CmdHelp.CommonFlag)
	printFlags(out, CmdHelp.DebugFlag)
	fmt.Fprint(out, "\nUse \"hup help <command>\" for more information about a command.\n")
	Exit()
}
