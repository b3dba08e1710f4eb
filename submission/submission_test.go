// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/dedup"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/metrics"
	"github.com/bitmark-inc/txguard/platform/mocks"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/submission"
	"github.com/bitmark-inc/txguard/timestamp"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/txbody"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logConfig := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logConfig)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

type policy bool

func (p policy) IsUncheckedSubmitAllowed() bool {
	return bool(p)
}

func setup(t *testing.T, allowUnchecked bool) (*gomock.Controller, *mocks.MockPlatform, *metrics.Meter, *submission.Gate) {
	ctl := gomock.NewController(t)
	p := mocks.NewMockPlatform(ctl)

	meter, err := metrics.NewMeter(prometheus.NewRegistry(), "platform_rejections", "transactions the platform did not accept")
	assert.Nil(t, err, "meter")

	submitted := dedup.New(180*time.Second, 10*time.Second)
	return ctl, p, meter, submission.New(submitted, p, policy(allowUnchecked), meter)
}

func newBody(t *testing.T, num int64) (*txbody.Body, []byte) {
	body := &txbody.Body{
		ID:          transactionid.New(account.New(num), timestamp.FromTime(time.Now())),
		NodeAccount: account.New(3),
		Memo:        "memo",
		Function:    txbody.CryptoTransfer,
	}
	raw, err := body.Pack()
	assert.Nil(t, err, "pack")
	return body, raw
}

func codeOf(t *testing.T, err error) responsecode.Code {
	code, ok := fault.CodeOf(err)
	assert.True(t, ok, "code for: %v", err)
	return code
}

func TestSubmitAndDuplicate(t *testing.T) {
	ctl, p, meter, gate := setup(t, false)
	defer ctl.Finish()

	body, raw := newBody(t, 1001)
	p.EXPECT().CreateTransaction(raw).Return(true).Times(1)

	assert.Nil(t, gate.Submit(body, raw), "first")

	err := gate.Submit(body, raw)
	assert.Equal(t, responsecode.DuplicateTransaction, codeOf(t, err), "second")
	assert.Equal(t, uint64(0), meter.Count())
}

func TestConcurrentSubmissionsForwardOnce(t *testing.T) {
	ctl, p, _, gate := setup(t, false)
	defer ctl.Finish()

	body, raw := newBody(t, 1002)
	p.EXPECT().CreateTransaction(raw).Return(true).Times(1)

	const callers = 50
	results := make(chan error, callers)
	start := make(chan struct{})
	wg := sync.WaitGroup{}
	for i := 0; i < callers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- gate.Submit(body, raw)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if nil == err {
			succeeded += 1
			continue
		}
		assert.Equal(t, responsecode.DuplicateTransaction, codeOf(t, err))
	}
	assert.Equal(t, 1, succeeded)
}

func TestRetryAfterPlatformRejection(t *testing.T) {
	ctl, p, meter, gate := setup(t, false)
	defer ctl.Finish()

	body, raw := newBody(t, 1003)
	gomock.InOrder(
		p.EXPECT().CreateTransaction(raw).Return(false),
		p.EXPECT().CreateTransaction(raw).Return(true),
	)

	err := gate.Submit(body, raw)
	assert.Equal(t, responsecode.PlatformTransactionNotCreated, codeOf(t, err), "rejected")
	assert.Equal(t, uint64(1), meter.Count(), "rejection counted")

	assert.Nil(t, gate.Submit(body, raw), "retry is not a duplicate")
	assert.Equal(t, uint64(1), meter.Count())
}

func TestUncheckedSubmitRefused(t *testing.T) {
	ctl, _, meter, gate := setup(t, false)
	defer ctl.Finish()

	body, raw := newBody(t, 1004)
	_, inner := newBody(t, 1005)
	body.UncheckedSubmit = inner

	err := gate.Submit(body, raw)
	assert.Equal(t, responsecode.PlatformTransactionNotCreated, codeOf(t, err))
	assert.Equal(t, uint64(0), meter.Count(), "not a platform rejection")
}

func TestUncheckedSubmitSubstitutesPayload(t *testing.T) {
	ctl, p, _, gate := setup(t, true)
	defer ctl.Finish()

	body, raw := newBody(t, 1006)
	innerBody, inner := newBody(t, 1007)
	body.UncheckedSubmit = inner

	p.EXPECT().CreateTransaction(inner).Return(true).Times(1)
	assert.Nil(t, gate.Submit(body, raw), "inner forwarded")

	// identity comes from the inner payload
	err := gate.Submit(innerBody, inner)
	assert.Equal(t, responsecode.DuplicateTransaction, codeOf(t, err))
}

func TestMalformedPayload(t *testing.T) {
	ctl, _, _, gate := setup(t, false)
	defer ctl.Finish()

	body, _ := newBody(t, 1008)
	err := gate.Submit(body, []byte{0xff, 0x01, 0x02})
	assert.NotNil(t, err)
	assert.True(t, fault.IsErrInvalid(err), "invalid error class")
}
