package eip712

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// DomainType is the EIP712Domain type string.
	DomainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	// ActionType is the Action type string.
	ActionType = "Action(uint256 channelId,uint256 handId,uint32 seq,uint8 action,uint128 amount,bytes32 prevHash)"
	// CardCommitType is the CardCommit type string.
	CardCommitType = "CardCommit(uint256 channelId,uint256 handId,uint32 seq,uint8 slot,bytes32 commitHash,bytes32 prevHash)"
)

var (
	// DomainTypeHash is keccak256(DomainType).
	DomainTypeHash = crypto.Keccak256Hash([]byte(DomainType))
	// ActionTypeHash is keccak256(ActionType).
	ActionTypeHash = crypto.Keccak256Hash([]byte(ActionType))
	// CardCommitTypeHash is keccak256(CardCommitType).
	CardCommitTypeHash = crypto.Keccak256Hash([]byte(CardCommitType))
)

var (
	bytes32Type = mustNewType("bytes32")
	uint256Type = mustNewType("uint256")
	uint128Type = mustNewType("uint128")
	uint32Type  = mustNewType("uint32")
	uint8Type   = mustNewType("uint8")
	addressType = mustNewType("address")

	// typeHash, nameHash, versionHash, chainId, verifyingContract
	domainArgs = abi.Arguments{
		{Type: bytes32Type}, {Type: bytes32Type}, {Type: bytes32Type},
		{Type: uint256Type}, {Type: addressType},
	}
	// typeHash, channelId, handId, seq, action, amount, prevHash, sender
	actionArgs = abi.Arguments{
		{Type: bytes32Type}, {Type: uint256Type}, {Type: uint256Type}, {Type: uint32Type},
		{Type: uint8Type}, {Type: uint128Type}, {Type: bytes32Type}, {Type: addressType},
	}
	// typeHash, channelId, handId, seq, slot, commitHash, prevHash
	cardCommitArgs = abi.Arguments{
		{Type: bytes32Type}, {Type: uint256Type}, {Type: uint256Type}, {Type: uint32Type},
		{Type: uint8Type}, {Type: bytes32Type}, {Type: bytes32Type},
	}
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
