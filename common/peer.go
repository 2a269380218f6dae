package common

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common/crypto"
	"github.com/libp2p/go-libp2p-core/peer"
)

// Peer is a single committee member identity: its address derived from the
// authority public key, optionally the authority keys themselves (for
// locally controlled identities) and its libp2p addressing info.
type Peer struct {
	address    common.Address
	publicKey  *crypto.PublicKey
	privateKey *crypto.PrivateKey
	peerInfo   *peer.AddrInfo
}

func CreatePeer(publicKey *crypto.PublicKey, privateKey *crypto.PrivateKey, peerInfo *peer.AddrInfo) *Peer {
	p := &Peer{
		publicKey:  publicKey,
		privateKey: privateKey,
		peerInfo:   peerInfo,
	}

	if publicKey != nil {
		p.address = common.BytesToAddress(crypto.Keccak256(publicKey.Bytes())[12:])
	}
	return p
}

func (p *Peer) GetAddress() common.Address {
	return p.address
}

func (p *Peer) SetAddress(address common.Address) {
	p.address = address
}

func (p *Peer) PublicKey() *crypto.PublicKey {
	return p.publicKey
}

func (p *Peer) SetPublicKey(publicKey *crypto.PublicKey) {
	p.publicKey = publicKey
}

func (p *Peer) GetPrivateKey() *crypto.PrivateKey {
	return p.privateKey
}

func (p *Peer) SetPrivateKey(privateKey *crypto.PrivateKey) {
	p.privateKey = privateKey
}

func (p *Peer) GetPeerInfo() *peer.AddrInfo {
	return p.peerInfo
}

// IsLocal reports whether we hold the authority private key for this peer.
func (p *Peer) IsLocal() bool {
	return p.privateKey != nil
}

func (p *Peer) Equals(toCompare *Peer) bool {
	return bytes.Equal(p.address.Bytes(), toCompare.address.Bytes())
}
