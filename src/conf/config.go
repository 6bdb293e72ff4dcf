package conf

import (
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	validator "gopkg.in/go-playground/validator.v9"
	yaml "gopkg.in/yaml.v2"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

const (
	defaultPrivateKeyFile     = "private.key"
	defaultSeparatorCacheSize = 64
	defaultWorkerCount        = 8
	defaultQueueLength        = 16
	defaultLogLevel           = "info"
)

var (
	// ErrInvalidDomain indicates a domain section that can't be turned into a signing domain.
	ErrInvalidDomain = errors.New("invalid domain config")
)

// DomainConfig holds the signing domain of a deployment.
type DomainConfig struct {
	Name    string `yaml:"Name" validate:"required"`
	Version string `yaml:"Version" validate:"required"`
	// decimal or 0x prefixed hex
	ChainID           string `yaml:"ChainID" validate:"required"`
	VerifyingContract string `yaml:"VerifyingContract" validate:"required,eth_addr"`
}

// WorkerConfig holds the batch verification pool options.
type WorkerConfig struct {
	Count       int `yaml:"Count" validate:"gte=0,lte=1024"`
	QueueLength int `yaml:"QueueLength" validate:"gte=0"`
}

// Config holds all the config read from yaml config file.
type Config struct {
	UseTestMasterKey bool `yaml:"UseTestMasterKey,omitempty"` // when UseTestMasterKey use default empty masterKey

	Domain             *DomainConfig `yaml:"Domain" validate:"required"`
	Worker             WorkerConfig  `yaml:"Worker"`
	SeparatorCacheSize int           `yaml:"SeparatorCacheSize" validate:"gte=0,lte=4096"`
	PrivateKeyFile     string        `yaml:"PrivateKeyFile"`
	LogLevel           string        `yaml:"LogLevel" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`
}

// GConf is the global config pointer.
var GConf *Config

// ToDomain converts the domain section into a signing domain.
func (c *DomainConfig) ToDomain() (d *types.Domain, err error) {
	if c == nil {
		err = errors.Wrap(ErrInvalidDomain, "missing domain section")
		return
	}
	chainID, ok := math.ParseBig256(c.ChainID)
	if !ok || chainID.Sign() < 0 {
		err = errors.Wrapf(ErrInvalidDomain, "chain id %q", c.ChainID)
		return
	}
	if !common.IsHexAddress(c.VerifyingContract) {
		err = errors.Wrapf(ErrInvalidDomain, "verifying contract %q", c.VerifyingContract)
		return
	}
	d = &types.Domain{
		Name:              c.Name,
		Version:           c.Version,
		ChainID:           chainID,
		VerifyingContract: common.HexToAddress(c.VerifyingContract),
	}
	return
}

// Validate checks config validity.
func (c *Config) Validate() (err error) {
	validate := validator.New()
	if err = validate.Struct(*c); err != nil {
		return
	}
	if err = validate.Struct(*c.Domain); err != nil {
		return
	}
	if _, err = c.Domain.ToDomain(); err != nil {
		return
	}
	return
}

// LoadConfig loads and validates the config at configPath, relative file paths are resolved
// against the config file directory.
func LoadConfig(configPath string) (config *Config, err error) {
	configPath = utils.HomeDirExpand(configPath)
	var configBytes []byte
	if configBytes, err = os.ReadFile(configPath); err != nil {
		log.WithError(err).Error("read config file failed")
		err = errors.Wrap(err, "read config file failed")
		return
	}
	config = &Config{}
	if err = yaml.Unmarshal(configBytes, config); err != nil {
		log.WithError(err).Error("unmarshal config file failed")
		err = errors.Wrap(err, "unmarshal config file failed")
		return
	}

	if config.SeparatorCacheSize == 0 {
		config.SeparatorCacheSize = defaultSeparatorCacheSize
	}
	if config.Worker.Count == 0 {
		config.Worker.Count = defaultWorkerCount
	}
	if config.Worker.QueueLength == 0 {
		config.Worker.QueueLength = defaultQueueLength
	}
	if config.LogLevel == "" {
		config.LogLevel = defaultLogLevel
	}
	if config.PrivateKeyFile == "" {
		config.PrivateKeyFile = defaultPrivateKeyFile
	}

	configDir := filepath.Dir(configPath)
	config.PrivateKeyFile = utils.ResolvePath(configDir, config.PrivateKeyFile)

	if err = config.Validate(); err != nil {
		log.WithError(err).Error("validate config failed")
		err = errors.Wrap(err, "validate config failed")
		config = nil
		return
	}
	return
}
