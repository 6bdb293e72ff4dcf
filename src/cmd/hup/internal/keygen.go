package internal

import (
	"fmt"

	"github.com/blackyblack/poker-contracts-sub001/src/conf"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/asymmetric"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/kms"
	"github.com/blackyblack/poker-contracts-sub001/src/utils"
)

var (
	forceKeygen bool
)

// CmdKeygen is hup keygen command entity.
var CmdKeygen = newCommand("hup keygen [common params] [-key path] [-force]",
	"generate a secp256k1 private key for signing channel messages", `
Keygen generates a new secp256k1 private key, stores it encrypted with the master key
and prints the address other players expect as the sender of your actions.
e.g.
    hup keygen -testnet -key ~/.hup/alice.key
`, "Keygen params")

func init() {
	CmdKeygen.Run = runKeygen

	addCommonFlags(CmdKeygen)
	addConfigFlag(CmdKeygen)
	addKeyFlag(CmdKeygen)
	CmdKeygen.Flag.BoolVar(&forceKeygen, "force", false, "Overwrite an existing private key file")
}

func runKeygen(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	keyPath := conf.GConf.PrivateKeyFile
	if utils.Exist(keyPath) && !forceKeygen {
		ConsoleLog.WithField("path", keyPath).Error("private key file exists, use -force to overwrite")
		SetExitStatus(1)
		return
	}

	privateKey, _, err := asymmetric.GenSecp256k1KeyPair()
	if err != nil {
		fatal(err, "generate key pair failed")
	}
	if err = kms.SavePrivateKey(keyPath, privateKey, masterKey()); err != nil {
		fatal(err, "save private key failed")
	}

	ConsoleLog.WithField("path", keyPath).Info("private key file saved")
	fmt.Printf("address: %s\n", privateKey.Address().Hex())
}
