package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Domain binds signed messages to a protocol name, version, chain and verifying contract.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

type domainJSON struct {
	Name              string                `json:"name"`
	Version           string                `json:"version"`
	ChainID           *math.HexOrDecimal256 `json:"chainId"`
	VerifyingContract common.Address        `json:"verifyingContract"`
}

// Validate checks the domain can be encoded.
func (d *Domain) Validate() error {
	return CheckUint256("chainId", d.ChainID)
}

// MarshalJSON implements json.Marshaler.
func (d Domain) MarshalJSON() ([]byte, error) {
	return json.Marshal(&domainJSON{
		Name:              d.Name,
		Version:           d.Version,
		ChainID:           (*math.HexOrDecimal256)(d.ChainID),
		VerifyingContract: d.VerifyingContract,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Domain) UnmarshalJSON(data []byte) (err error) {
	var dj domainJSON
	if err = json.Unmarshal(data, &dj); err != nil {
		return
	}
	d.Name = dj.Name
	d.Version = dj.Version
	d.ChainID = (*big.Int)(dj.ChainID)
	d.VerifyingContract = dj.VerifyingContract
	return
}
