package asymmetric

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenSecp256k1KeyPair(t *testing.T) {
	Convey("Given a generated key pair", t, func() {
		priv, pub, err := GenSecp256k1KeyPair()
		So(err, ShouldBeNil)
		So(priv.PubKey().IsEqual(pub), ShouldBeTrue)

		Convey("the address should match go-ethereum derivation", func() {
			So(priv.Address(), ShouldEqual, crypto.PubkeyToAddress(priv.ToECDSA().PublicKey))
			So(pub.Address(), ShouldEqual, priv.Address())
		})
		Convey("the key should survive serialization", func() {
			priv2, pub2, err := PrivKeyFromBytes(priv.Serialize())
			So(err, ShouldBeNil)
			So(bytes.Equal(priv2.Serialize(), priv.Serialize()), ShouldBeTrue)
			So(pub2.IsEqual(pub), ShouldBeTrue)

			pub3, err := ParsePubKey(pub.Serialize())
			So(err, ShouldBeNil)
			So(pub3.IsEqual(pub), ShouldBeTrue)
		})
		Convey("signatures should carry v in 27 or 28 and recover the address", func() {
			digest := crypto.Keccak256Hash([]byte("digest"))
			sig, err := priv.Sign(digest)
			So(err, ShouldBeNil)
			So(sig.V() == 27 || sig.V() == 28, ShouldBeTrue)

			raw := sig.Bytes()
			raw[64] -= 27
			recovered, err := crypto.SigToPub(digest[:], raw)
			So(err, ShouldBeNil)
			So(crypto.PubkeyToAddress(*recovered), ShouldEqual, priv.Address())
		})
	})
}

func TestPrivKeyFromBytes(t *testing.T) {
	Convey("invalid scalars should be rejected", t, func() {
		_, _, err := PrivKeyFromBytes(make([]byte, 31))
		So(errors.Cause(err), ShouldEqual, ErrInvalidPrivateKey)
		_, _, err = PrivKeyFromBytes(make([]byte, 32))
		So(errors.Cause(err), ShouldEqual, ErrInvalidPrivateKey)
		_, _, err = PrivKeyFromBytes(bytes.Repeat([]byte{0xff}, 32))
		So(errors.Cause(err), ShouldEqual, ErrInvalidPrivateKey)
	})
	Convey("a known key should derive the known address", t, func() {
		// first default hardhat account
		priv, _, err := PrivKeyFromBytes(hardhatKey0())
		So(err, ShouldBeNil)
		So(priv.Address().Hex(), ShouldEqual, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	})
}

func hardhatKey0() []byte {
	key, _ := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	return crypto.FromECDSA(key)
}
