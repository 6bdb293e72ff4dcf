// Package testnet contains the parameters of a local heads-up poker test chain.
package testnet

import (
	yaml "gopkg.in/yaml.v2"

	"github.com/blackyblack/poker-contracts-sub001/src/conf"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

const (
	// HUPConfigYAML is the config string in YAML format of a local hardhat chain with the
	// verifying contract at the first deployment address.
	HUPConfigYAML = `
Domain:
  Name: HeadsUpPoker
  Version: "1"
  ChainID: "31337"
  VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
Worker:
  Count: 4
  QueueLength: 16
SeparatorCacheSize: 8
UseTestMasterKey: true
`
)

// GetTestNetConfig parses and returns the local test chain config.
func GetTestNetConfig() (config *conf.Config) {
	var err error
	config = &conf.Config{}
	if err = yaml.Unmarshal([]byte(HUPConfigYAML), config); err != nil {
		log.WithError(err).Fatal("failed to unmarshal testnet config")
	}
	if err = config.Validate(); err != nil {
		log.WithError(err).Fatal("invalid testnet config")
	}
	return
}
