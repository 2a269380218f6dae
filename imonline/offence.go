package imonline

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common"
)

// Offender pairs the stable (cross-session) identity of an unresponsive
// validator with its identity in the offending session.
type Offender struct {
	GlobalId ethcommon.Address
	Identity *common.Peer
}

// UnresponsivenessOffence is the report handed to the offence collector at
// the end of a session with unresponsive validators. The collector owns it
// after ReportOffence returns.
type UnresponsivenessOffence struct {
	SessionIndex      uint32
	ValidatorSetCount uint32
	Offenders         []*Offender
}

// SlashFraction computes the penalty for this offence.
func (o *UnresponsivenessOffence) SlashFraction() Perbill {
	return SlashFraction(uint32(len(o.Offenders)), o.ValidatorSetCount)
}
