package internal

import (
	"fmt"
	"math/big"
	"os"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/blackyblack/poker-contracts-sub001/src/conf"
	"github.com/blackyblack/poker-contracts-sub001/src/conf/testnet"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/asymmetric"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/kms"
	"github.com/blackyblack/poker-contracts-sub001/src/eip712"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// These are general flags used by commands.
var (
	configFile      string
	useTestNet      bool
	keyFile         string
	password        string
	withPassword    bool
	consoleLogLevel string // foreground console log level
	verbose         bool
	quiet           bool
	cpuProfile      string
	memProfile      string
	help            bool // show sub command help message

	separators *eip712.Separators
)

func addCommonFlags(cmd *Command) {
	cmd.CommonFlag.BoolVar(&help, "help", false, "Show help message")
	cmd.CommonFlag.BoolVar(&withPassword, "with-password", false,
		"Enter the master key for the private key file")

	// debugging flags.
	cmd.DebugFlag.StringVar(&password, "password", "",
		"Master key for the private key file (NOT SAFE, for debug or script only)")
	cmd.DebugFlag.StringVar(&consoleLogLevel, "log-level", "info",
		"Console log level: trace debug info warning error fatal panic")
	cmd.DebugFlag.BoolVar(&verbose, "verbose", false, "Dump parsed messages")
	cmd.DebugFlag.BoolVar(&quiet, "quiet", false, "Discard library logs, console messages are kept")
	cmd.DebugFlag.StringVar(&cpuProfile, "cpu-profile", "", "Path to file for CPU profiling information")
	cmd.DebugFlag.StringVar(&memProfile, "mem-profile", "", "Path to file for memory profiling information")
}

func commonFlagsInit(cmd *Command) {
	if help {
		printCommandHelp(cmd)
		Exit()
	}

	if lvl, err := logrus.ParseLevel(consoleLogLevel); err != nil {
		ConsoleLog.SetLevel(log.InfoLevel)
	} else {
		ConsoleLog.SetLevel(lvl)
	}

	if cpuProfile != "" || memProfile != "" {
		p, err := utils.StartProfile(cpuProfile, memProfile)
		if err != nil {
			fatal(err, "start profile failed")
		}
		AtExit(p.Stop)
	}
}

func addConfigFlag(cmd *Command) {
	cmd.CommonFlag.StringVar(&configFile, "config", "~/.hup/config.yaml",
		"Config file with the signing domain")
	cmd.CommonFlag.BoolVar(&useTestNet, "testnet", false,
		"Use the local hardhat chain domain instead of a config file")
}

func addKeyFlag(cmd *Command) {
	cmd.Flag.StringVar(&keyFile, "key", "", "Private key file, default is PrivateKeyFile of the config")
}

func configInit() {
	var err error
	if useTestNet {
		conf.GConf = testnet.GetTestNetConfig()
		if conf.GConf.PrivateKeyFile == "" {
			conf.GConf.PrivateKeyFile = utils.HomeDirExpand("~/.hup/testnet.key")
		}
		if conf.GConf.LogLevel == "" {
			conf.GConf.LogLevel = consoleLogLevel
		}
	} else {
		configFile = utils.HomeDirExpand(configFile)
		if conf.GConf, err = conf.LoadConfig(configFile); err != nil {
			fatal(err, "load config file failed")
		}
		ConsoleLog.WithField("path", configFile).Debug("init config success")
	}

	if quiet {
		log.Silence()
	} else {
		log.SetOutput(os.Stderr)
		log.SetStringLevel(conf.GConf.LogLevel, log.InfoLevel)
	}

	if separators, err = eip712.NewSeparators(conf.GConf.SeparatorCacheSize); err != nil {
		fatal(err, "create separator cache failed")
	}
	if keyFile != "" {
		conf.GConf.PrivateKeyFile = utils.HomeDirExpand(keyFile)
	}
}

// domainSeparator returns the configured domain and its separator.
func domainSeparator() (d *types.Domain, sep common.Hash) {
	var err error
	if d, err = conf.GConf.Domain.ToDomain(); err != nil {
		fatal(err, "invalid domain config")
	}
	if sep, err = separators.Get(d); err != nil {
		fatal(err, "compute domain separator failed")
	}
	return
}

func masterKey() []byte {
	if password == "" && !conf.GConf.UseTestMasterKey {
		password = readMasterKey(!withPassword)
	}
	return []byte(password)
}

func loadPrivateKey() *asymmetric.PrivateKey {
	privateKey, err := kms.LoadPrivateKey(conf.GConf.PrivateKeyFile, masterKey())
	if err != nil {
		fatal(err, "load private key file failed")
	}
	ConsoleLog.WithField("address", privateKey.Address().Hex()).Debug("loaded private key")
	return privateKey
}

// readMasterKey reads the password of private key from terminal
func readMasterKey(skip bool) string {
	if skip {
		return ""
	}
	fmt.Println("Enter master key(press Enter for default: \"\"): ")
	bytePwd, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		ConsoleLog.Errorf("read master key failed: %v", err)
		SetExitStatus(1)
		Exit()
	}
	return string(bytePwd)
}

func dump(label string, v interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %s", label, spew.Sdump(v))
	}
}

// bigFlag is a uint256 flag accepting decimal or 0x hex.
type bigFlag struct {
	v *big.Int
}

func (f *bigFlag) String() string {
	if f.v == nil {
		return ""
	}
	return f.v.String()
}

func (f *bigFlag) Set(s string) error {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("invalid uint256 %q", s)
	}
	f.v = v
	return nil
}

// Int returns the parsed value, zero if unset.
func (f *bigFlag) Int() *big.Int {
	if f.v == nil {
		return new(big.Int)
	}
	return f.v
}
