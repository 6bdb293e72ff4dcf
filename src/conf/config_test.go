package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	yaml "gopkg.in/yaml.v2"

	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

const testConfig = `
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "31337"
  VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
Worker:
  Count: 4
PrivateKeyFile: keys/player.key
LogLevel: debug
`

func writeConfig(dir, content string) string {
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		panic(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	Convey("Given a config dir", t, func() {
		dir, err := os.MkdirTemp("", "hup-conf")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		Convey("a complete config should load with defaults filled", func() {
			config, err := LoadConfig(writeConfig(dir, testConfig))
			So(err, ShouldBeNil)
			So(config.Worker.Count, ShouldEqual, 4)
			So(config.Worker.QueueLength, ShouldEqual, defaultQueueLength)
			So(config.SeparatorCacheSize, ShouldEqual, defaultSeparatorCacheSize)
			So(config.LogLevel, ShouldEqual, "debug")
			So(config.PrivateKeyFile, ShouldEqual, filepath.Join(dir, "keys", "player.key"))

			d, err := config.Domain.ToDomain()
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "HeadsUpPoker")
			So(d.ChainID.Int64(), ShouldEqual, 31337)
			So(d.VerifyingContract.Hex(), ShouldEqual, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		})
		Convey("an absolute key path should be kept", func() {
			var raw map[string]interface{}
			So(yaml.Unmarshal([]byte(testConfig), &raw), ShouldBeNil)
			raw["PrivateKeyFile"] = "/var/lib/hup/player.key"
			out, err := yaml.Marshal(raw)
			So(err, ShouldBeNil)
			config, err := LoadConfig(writeConfig(dir, string(out)))
			So(err, ShouldBeNil)
			So(config.PrivateKeyFile, ShouldEqual, "/var/lib/hup/player.key")
		})
		Convey("a hex chain id should be accepted", func() {
			config, err := LoadConfig(writeConfig(dir, `
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "0x7a69"
  VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
`))
			So(err, ShouldBeNil)
			d, err := config.Domain.ToDomain()
			So(err, ShouldBeNil)
			So(d.ChainID.Int64(), ShouldEqual, 31337)
			So(config.PrivateKeyFile, ShouldEqual, filepath.Join(dir, defaultPrivateKeyFile))
		})
		Convey("a missing domain should fail validation", func() {
			config, err := LoadConfig(writeConfig(dir, "LogLevel: info\n"))
			So(err, ShouldNotBeNil)
			So(config, ShouldBeNil)
		})
		Convey("a bad contract address should fail validation", func() {
			_, err := LoadConfig(writeConfig(dir, `
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "1"
  VerifyingContract: "0x1234"
`))
			So(err, ShouldNotBeNil)
		})
		Convey("a bad chain id should fail validation", func() {
			_, err := LoadConfig(writeConfig(dir, `
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "-5"
  VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
`))
			So(errors.Cause(err), ShouldEqual, ErrInvalidDomain)
		})
		Convey("an unknown log level should fail validation", func() {
			_, err := LoadConfig(writeConfig(dir, testConfig+"SeparatorCacheSize: 3\n"))
			So(err, ShouldBeNil)
			_, err = LoadConfig(writeConfig(dir, `
LogLevel: loud
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "1"
  VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
`))
			So(err, ShouldNotBeNil)
		})
		Convey("a missing or broken file should fail", func() {
			_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
			_, err = LoadConfig(writeConfig(dir, "Domain: [1, 2"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestToDomain(t *testing.T) {
	Convey("a nil domain section should be invalid", t, func() {
		var c *DomainConfig
		_, err := c.ToDomain()
		So(errors.Cause(err), ShouldEqual, ErrInvalidDomain)
	})
}

func TestLimits(t *testing.T) {
	Convey("pool and cache sizes beyond the limits should fail validation", t, func() {
		dir, err := os.MkdirTemp("", "hup-conf")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		_, err = LoadConfig(writeConfig(dir, testConfig+"SeparatorCacheSize: "+strconv.Itoa(MaxSeparatorCacheSize)+"\n"))
		So(err, ShouldBeNil)
		_, err = LoadConfig(writeConfig(dir, testConfig+"SeparatorCacheSize: "+strconv.Itoa(MaxSeparatorCacheSize+1)+"\n"))
		So(err, ShouldNotBeNil)

		config, err := LoadConfig(writeConfig(dir, testConfig))
		So(err, ShouldBeNil)
		config.Worker.Count = MaxWorkerCount + 1
		So(config.Validate(), ShouldNotBeNil)
	})
}
