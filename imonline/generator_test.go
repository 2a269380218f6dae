package imonline_test

import (
	"context"
	"testing"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/common/crypto"
	"github.com/gagarinchain/liveness/imonline"
	"github.com/gagarinchain/liveness/mocks"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func initGenerator(t *testing.T, committee []*common.Peer, locals []*common.Peer,
	submitter *mocks.Submitter) (*imonline.Service, *imonline.Generator) {
	collector := &mocks.OffenceCollector{}
	collector.On("ReportOffence", mock.Anything, mock.Anything)
	service := imonline.NewService(imonline.NewLedger(nil), collector, 2, committee)

	stater := &mocks.NetworkStater{}
	stater.On("NetworkState").Return(&pb.NetworkState{PeerId: []byte{1}})

	gen := imonline.NewGenerator(service, service.Ledger(), locals, &imonline.LocalSigner{}, submitter, stater)
	return service, gen
}

func TestSendHeartbeats(t *testing.T) {
	committee := generateCommittee(t, 3)
	submitter := &mocks.Submitter{}

	var submitted []*pb.SignedHeartbeat
	submitter.On("SubmitHeartbeat", mock.Anything, mock.AnythingOfType("*protobuff.SignedHeartbeat")).
		Run(func(args mock.Arguments) {
			submitted = append(submitted, (args[1]).(*pb.SignedHeartbeat))
		}).Return(nil)

	service, gen := initGenerator(t, committee, committee[:2], submitter)

	results := gen.SendHeartbeats(context.Background(), 4)
	require.Len(t, results, 2)
	assert.Equal(t, imonline.Sent, results[0].Status)
	assert.Equal(t, imonline.Sent, results[1].Status)

	require.Len(t, submitted, 2)
	hb := submitted[0].GetHeartbeat()
	assert.Equal(t, uint64(4), hb.GetBlockNumber())
	assert.Equal(t, uint32(2), hb.GetSessionIndex())
	assert.Equal(t, uint32(0), hb.GetValidatorIndex())

	// submissions are observed, not applied: they re-enter via admission
	require.NoError(t, service.Admission().PreCheck(submitted[0]))
	require.NoError(t, service.Admission().Apply(submitted[0]))
	assert.True(t, service.IsOnline(0))
}

func TestSkipAlreadyOnline(t *testing.T) {
	committee := generateCommittee(t, 3)
	submitter := &mocks.Submitter{}

	var submitted []*pb.SignedHeartbeat
	submitter.On("SubmitHeartbeat", mock.Anything, mock.AnythingOfType("*protobuff.SignedHeartbeat")).
		Run(func(args mock.Arguments) {
			submitted = append(submitted, (args[1]).(*pb.SignedHeartbeat))
		}).Return(nil)

	service, gen := initGenerator(t, committee, committee, submitter)

	// validator 0 authored a block, validator 1 produced an uncle
	service.NoteAuthor(committee[0].GetAddress())
	service.NoteUncle(committee[1].GetAddress(), 0)

	results := gen.SendHeartbeats(context.Background(), 4)
	require.Len(t, results, 3)
	assert.Equal(t, imonline.AlreadyOnline, results[0].Status)
	assert.Equal(t, imonline.AlreadyOnline, results[1].Status)
	assert.Equal(t, imonline.Sent, results[2].Status)

	// zero submissions for the online identities, one for the offline one
	require.Len(t, submitted, 1)
	assert.Equal(t, uint32(2), submitted[0].GetHeartbeat().GetValidatorIndex())
}

func TestNoDuplicateSubmissionWithinPass(t *testing.T) {
	committee := generateCommittee(t, 3)
	submitter := &mocks.Submitter{}
	submitter.On("SubmitHeartbeat", mock.Anything, mock.Anything).Return(nil)

	// the same identity handed in twice resolves to one slot
	_, gen := initGenerator(t, committee, []*common.Peer{committee[0], committee[0]}, submitter)

	results := gen.SendHeartbeats(context.Background(), 1)
	require.Len(t, results, 2)
	assert.Equal(t, imonline.Sent, results[0].Status)
	assert.Equal(t, imonline.AlreadyOnline, results[1].Status)

	submitter.AssertNumberOfCalls(t, "SubmitHeartbeat", 1)
}

func TestSubmissionFailureDoesNotAbortPass(t *testing.T) {
	committee := generateCommittee(t, 3)
	submitter := &mocks.Submitter{}

	boom := errors.New("pool unavailable")
	submitter.On("SubmitHeartbeat", mock.Anything, mock.Anything).Return(boom).Once()
	submitter.On("SubmitHeartbeat", mock.Anything, mock.Anything).Return(nil)

	_, gen := initGenerator(t, committee, committee[:2], submitter)

	results := gen.SendHeartbeats(context.Background(), 1)
	require.Len(t, results, 2)
	assert.Equal(t, imonline.SubmissionFailed, results[0].Status)
	assert.Equal(t, boom, results[0].Err)
	// the second identity is still attempted
	assert.Equal(t, imonline.Sent, results[1].Status)
}

func TestSigningFailureDoesNotAbortPass(t *testing.T) {
	committee := generateCommittee(t, 3)
	submitter := &mocks.Submitter{}
	submitter.On("SubmitHeartbeat", mock.Anything, mock.Anything).Return(nil)

	collector := &mocks.OffenceCollector{}
	collector.On("ReportOffence", mock.Anything, mock.Anything)
	service := imonline.NewService(imonline.NewLedger(nil), collector, 2, committee)

	stater := &mocks.NetworkStater{}
	stater.On("NetworkState").Return(&pb.NetworkState{PeerId: []byte{1}})

	signer := &mocks.Signer{}
	boom := errors.New("keystore locked")
	signer.On("SignHash", committee[0], mock.Anything).Return(nil, boom)
	signer.On("SignHash", committee[1], mock.Anything).Return(
		func(p *common.Peer, hash []byte) *crypto.Signature {
			return crypto.Sign(hash, p.GetPrivateKey())
		},
		func(p *common.Peer, hash []byte) error {
			return nil
		})

	gen := imonline.NewGenerator(service, service.Ledger(), committee[:2], signer, submitter, stater)

	results := gen.SendHeartbeats(context.Background(), 1)
	require.Len(t, results, 2)
	assert.Equal(t, imonline.SigningFailed, results[0].Status)
	assert.Equal(t, boom, results[0].Err)
	// the second identity is unaffected by the first one's keystore
	assert.Equal(t, imonline.Sent, results[1].Status)
}

func TestLocalIdentityOutsideSet(t *testing.T) {
	committee := generateCommittee(t, 3)
	stranger := generateCommittee(t, 1)[0]
	submitter := &mocks.Submitter{}
	submitter.On("SubmitHeartbeat", mock.Anything, mock.Anything).Return(nil)

	_, gen := initGenerator(t, committee, []*common.Peer{stranger, committee[0]}, submitter)

	results := gen.SendHeartbeats(context.Background(), 1)
	require.Len(t, results, 2)
	assert.Equal(t, imonline.NotValidator, results[0].Status)
	assert.Equal(t, imonline.Sent, results[1].Status)
}
