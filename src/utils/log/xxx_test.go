package log

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Exit(func() int {
		SetOutput(os.Stdout)
		SetLevel(DebugLevel)
		return m.Run()
	}())
}
