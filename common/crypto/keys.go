package crypto

import (
	"encoding/binary"
	"io"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/op/go-logging"
	"github.com/phoreproject/bls/g1pubs"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("crypto")

// HeartbeatDomain separates liveness signatures from any other BLS
// signatures an authority key may produce.
const HeartbeatDomain uint64 = 0x4c495645 // "LIVE"

type PublicKey struct {
	v *g1pubs.PublicKey
}

func NewPublicKey(v *g1pubs.PublicKey) *PublicKey {
	return &PublicKey{v: v}
}

func (key *PublicKey) V() *g1pubs.PublicKey {
	return key.v
}

func (key *PublicKey) Bytes() []byte {
	b := key.v.Serialize()
	return b[:]
}

func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	key, e := g1pubs.DeserializePublicKey(toBytes48(b))
	if e != nil {
		return nil, errors.Wrap(e, "can't deserialize public key")
	}
	return &PublicKey{v: key}, nil
}

type PrivateKey struct {
	v *g1pubs.SecretKey
}

func NewPrivateKey(v *g1pubs.SecretKey) *PrivateKey {
	return &PrivateKey{v: v}
}

func (pk *PrivateKey) V() *g1pubs.SecretKey {
	return pk.v
}

func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{g1pubs.PrivToPub(pk.v)}
}

func PrivateKeyFromBytes(b []byte) *PrivateKey {
	return &PrivateKey{v: g1pubs.DeserializeSecretKey(toBytes32(b))}
}

func GenerateKey(r io.Reader) (*PrivateKey, error) {
	k, err := g1pubs.RandKey(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize secret key")
	}
	return &PrivateKey{v: k}, nil
}

type Signature struct {
	pub  *g1pubs.PublicKey
	sign *g1pubs.Signature
}

func NewSignature(pub *g1pubs.PublicKey, sign *g1pubs.Signature) *Signature {
	return &Signature{pub: pub, sign: sign}
}

func (s *Signature) Sign() *g1pubs.Signature {
	return s.sign
}

func (s *Signature) Pub() *g1pubs.PublicKey {
	return s.pub
}

func (s *Signature) ToProto() *pb.Signature {
	pkBytes := s.pub.Serialize()
	signBytes := s.sign.Serialize()
	return &pb.Signature{
		From:      pkBytes[:],
		Signature: signBytes[:],
	}
}

func SignatureFromProto(mes *pb.Signature) *Signature {
	return NewSignatureFromBytes(mes.From, mes.Signature)
}

func NewSignatureFromBytes(pk []byte, sign []byte) *Signature {
	key, e := g1pubs.DeserializePublicKey(toBytes48(pk))
	if e != nil {
		log.Error(e)
		return nil
	}
	signature, e := g1pubs.DeserializeSignature(toBytes96(sign))
	if e != nil {
		log.Error(e)
		return nil
	}

	return NewSignature(key, signature)
}

// Sign signs a 32 byte message hash under the heartbeat domain.
func Sign(message []byte, key *PrivateKey) *Signature {
	sig := g1pubs.SignWithDomain(toBytes32(message), key.v, domainBytes(HeartbeatDomain))
	return NewSignature(g1pubs.PrivToPub(key.v), sig)
}

// Verify checks the signature against the public key carried with it.
// Callers must separately check that the key is the one they expect.
func Verify(message []byte, s *Signature) bool {
	if s == nil {
		return false
	}
	return g1pubs.VerifyWithDomain(toBytes32(message), s.pub, s.sign, domainBytes(HeartbeatDomain))
}

func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}

func domainBytes(domain uint64) (res [8]byte) {
	binary.LittleEndian.PutUint64(res[:], domain)
	return
}

func toBytes32(bytes []byte) (res [32]byte) {
	copy(res[:], bytes)
	return
}

func toBytes48(bytes []byte) (res [48]byte) {
	copy(res[:], bytes)
	return
}

func toBytes96(bytes []byte) (res [96]byte) {
	copy(res[:], bytes)
	return
}
