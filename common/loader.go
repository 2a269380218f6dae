package common

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common/crypto"
	p2pcrypto "github.com/libp2p/go-libp2p-core/crypto"
	"github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("common")

// CommitteeLoader reads the validator set for the starting session from
// disk. Subsequent sets arrive through the session rotation signal.
type CommitteeLoader interface {
	LoadPeerListFromFile(filePath string) ([]*Peer, error)
	LoadPeerFromFile(fileName string, peer *Peer) (peerKey p2pcrypto.PrivKey, err error)
}

type CommitteeData struct {
	Peers []PeerData `json:"peers"`
}

type PeerData struct {
	Address      string `json:"addr"`
	Pub          string `json:"pub"`
	MultiAddress string `json:"ma"`
}

type PeerKeyData struct {
	PrivateKey string `json:"priv"`
	PeerKey    string `json:"peerKey"`
}

type CommitteeLoaderImpl struct {
}

func (c *CommitteeLoaderImpl) LoadPeerListFromFile(filePath string) (res []*Peer, err error) {
	file, e := os.Open(filePath)
	if e != nil {
		return nil, errors.Wrap(e, "can't load committee list")
	}
	defer file.Close()

	byteValue, e := ioutil.ReadAll(file)
	if e != nil {
		return nil, e
	}

	var data CommitteeData
	if err := json.Unmarshal(byteValue, &data); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal committee file")
	}

	for _, v := range data.Peers {
		addr, e := ma.NewMultiaddr(v.MultiAddress)
		if e != nil {
			return nil, errors.Wrap(e, "can't parse multiaddress")
		}

		info, e := peer.AddrInfoFromP2pAddr(addr)
		if e != nil {
			return nil, errors.Wrap(e, "can't create addr info")
		}

		pubBytes, e := hex.DecodeString(v.Pub)
		if e != nil {
			return nil, errors.Wrap(e, "can't decode public key")
		}
		pub, e := crypto.PublicKeyFromBytes(pubBytes)
		if e != nil {
			return nil, e
		}

		p := CreatePeer(pub, nil, info)
		p.SetAddress(common.HexToAddress(v.Address))
		res = append(res, p)
	}

	return res, nil
}

func (c *CommitteeLoaderImpl) LoadPeerFromFile(fileName string, p *Peer) (peerKey p2pcrypto.PrivKey, err error) {
	file, e := os.Open(fileName)
	if e != nil {
		return nil, errors.Wrap(e, "can't load peer file")
	}
	defer file.Close()

	byteValue, e := ioutil.ReadAll(file)
	if e != nil {
		return nil, e
	}

	var data PeerKeyData
	if err := json.Unmarshal(byteValue, &data); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal peer file")
	}

	privBytes, e := hex.DecodeString(data.PrivateKey)
	if e != nil {
		return nil, errors.Wrap(e, "can't decode private key")
	}
	p.SetPrivateKey(crypto.PrivateKeyFromBytes(privBytes))
	p.SetPublicKey(p.GetPrivateKey().PublicKey())

	keyBytes, e := hex.DecodeString(data.PeerKey)
	if e != nil {
		return nil, errors.Wrap(e, "can't decode peer key")
	}
	peerKey, e = p2pcrypto.UnmarshalPrivateKey(keyBytes)
	if e != nil {
		return nil, errors.Wrap(e, "can't unmarshal peer key")
	}

	return peerKey, nil
}
