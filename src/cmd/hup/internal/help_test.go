package internal

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommandList(t *testing.T) {
	Convey("Given a few registered commands", t, func() {
		saved := HupCommands
		defer func() { HupCommands = saved }()
		HupCommands = []*Command{CmdSign, CmdVerify, CmdReveal, CmdVersion, CmdHelp}

		var buf bytes.Buffer
		writeCommandList(&buf)
		out := buf.String()

		Convey("commands should be grouped by section", func() {
			So(out, ShouldContainSubstring, "Signing:")
			So(strings.Index(out, "sign "), ShouldBeGreaterThan, strings.Index(out, "Signing:"))
			So(strings.Index(out, "verify "), ShouldBeGreaterThan, strings.Index(out, "Verification:"))
			So(strings.Index(out, "reveal "), ShouldBeGreaterThan, strings.Index(out, "Card commitments:"))
			So(out, ShouldNotContainSubstring, "keygen")
		})
		Convey("unsectioned commands should be listed last", func() {
			other := strings.Index(out, "Other:")
			So(other, ShouldBeGreaterThan, strings.Index(out, "reveal "))
			So(strings.Index(out, "version "), ShouldBeGreaterThan, other)
			So(strings.Index(out, "help "), ShouldBeGreaterThan, other)
		})
		Convey("lookup should only find registered commands", func() {
			So(findCommand("verify"), ShouldEqual, CmdVerify)
			So(findCommand("keygen"), ShouldBeNil)
		})
	})
}

func TestPrintFlags(t *testing.T) {
	Convey("An empty flag set should print nothing", t, func() {
		var buf bytes.Buffer
		printFlags(&buf, flag.NewFlagSet("Empty params", flag.ContinueOnError))
		So(buf.Len(), ShouldEqual, 0)
	})
	Convey("A flag set should print its name and defaults", t, func() {
		var buf bytes.Buffer
		printFlags(&buf, CmdVerify.Flag)
		So(buf.String(), ShouldContainSubstring, "Verify params:")
		So(buf.String(), ShouldContainSubstring, "-batch")
	})
	Convey("The version line should name the tool", t, func() {
		So(PrintVersion(false), ShouldStartWith, "hup "+Version)
	})
}
