package imonline_test

import (
	"testing"

	"github.com/gagarinchain/liveness/imonline"
	"github.com/gagarinchain/liveness/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func initAdmission(t *testing.T, n int) (*imonline.Service, *imonline.Admission) {
	committee := generateCommittee(t, n)
	collector := &mocks.OffenceCollector{}
	collector.On("ReportOffence", mock.Anything, mock.Anything)
	service := imonline.NewService(imonline.NewLedger(nil), collector, 2, committee)
	return service, service.Admission()
}

func TestPreCheckValid(t *testing.T) {
	service, admission := initAdmission(t, 3)

	sh := signedHeartbeat(t, 1, 2, 0, service.Validators()[0].GetPrivateKey())
	assert.NoError(t, admission.PreCheck(sh))
	// pre-check has no side effects
	assert.False(t, service.IsOnline(0))
}

func TestPreCheckStale(t *testing.T) {
	service, admission := initAdmission(t, 3)
	key := service.Validators()[0].GetPrivateKey()

	// one session late and one early are rejected identically,
	// signature validity notwithstanding
	assert.Equal(t, imonline.ErrStale, admission.PreCheck(signedHeartbeat(t, 1, 1, 0, key)))
	assert.Equal(t, imonline.ErrStale, admission.PreCheck(signedHeartbeat(t, 1, 3, 0, key)))

	// staleness wins even for indices that don't exist in the claimed session
	assert.Equal(t, imonline.ErrStale, admission.PreCheck(signedHeartbeat(t, 1, 5, 99, key)))
}

func TestPreCheckBadSignature(t *testing.T) {
	service, admission := initAdmission(t, 3)

	// signed with validator 1's key but claiming index 0
	forged := signedHeartbeat(t, 1, 2, 0, service.Validators()[1].GetPrivateKey())
	assert.Equal(t, imonline.ErrBadSignature, admission.PreCheck(forged))

	// index outside the set has no registered key
	unknown := signedHeartbeat(t, 1, 2, 7, service.Validators()[0].GetPrivateKey())
	assert.Equal(t, imonline.ErrBadSignature, admission.PreCheck(unknown))

	// tampering after signing invalidates the proof
	tampered := signedHeartbeat(t, 1, 2, 0, service.Validators()[0].GetPrivateKey())
	tampered.Heartbeat.BlockNumber = 100
	assert.Equal(t, imonline.ErrBadSignature, admission.PreCheck(tampered))
}

func TestPreCheckDuplicate(t *testing.T) {
	service, admission := initAdmission(t, 3)
	sh := signedHeartbeat(t, 1, 2, 0, service.Validators()[0].GetPrivateKey())

	assert.NoError(t, admission.PreCheck(sh))
	assert.NoError(t, admission.Apply(sh))

	assert.Equal(t, imonline.ErrDuplicateIndex, admission.PreCheck(sh))
}

func TestApplyRace(t *testing.T) {
	service, admission := initAdmission(t, 3)
	sh := signedHeartbeat(t, 1, 2, 0, service.Validators()[0].GetPrivateKey())

	assert.NoError(t, admission.Apply(sh))
	// the index became present between phases: expected race, not corruption
	assert.Equal(t, imonline.ErrDuplicateIndex, admission.Apply(sh))
	assert.True(t, service.IsOnline(0))
}

func TestApplyAfterRotation(t *testing.T) {
	service, admission := initAdmission(t, 3)
	sh := signedHeartbeat(t, 1, 2, 0, service.Validators()[0].GetPrivateKey())

	assert.NoError(t, admission.PreCheck(sh))

	// session rotates between phase 1 and phase 2
	service.OnSessionAboutToEnd()
	service.OnSessionEnded(3, service.Validators())

	assert.Equal(t, imonline.ErrStale, admission.Apply(sh))
	assert.False(t, service.IsOnline(0))
}
