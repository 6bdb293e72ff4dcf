package utils

import (
	"os"
	"testing"

	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

func testSetup() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}

func TestMain(m *testing.M) {
	testSetup()
	os.Exit(m.Run())
}
