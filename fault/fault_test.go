// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/responsecode"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrLimitOne    = fault.LimitError("limit one")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		limit    bool
		notFound bool
		process  bool
	}{
		{ErrExistsOne, true, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false},
		{ErrLimitOne, false, false, true, false, false},
		{ErrNotFoundOne, false, false, false, true, false},
		{errors.Wrap(ErrNotFoundTwo, "wrapped"), false, false, false, true, false},
		{ErrProcessOne, false, false, false, false, true},
		{ErrProcessTwo, false, false, false, false, true},
	}

	for i, e := range errorList {
		assert.Equal(t, e.exists, fault.IsErrExists(e.err), "%d: exists: %v", i, e.err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(e.err), "%d: invalid: %v", i, e.err)
		assert.Equal(t, e.limit, fault.IsErrLimit(e.err), "%d: limit: %v", i, e.err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(e.err), "%d: not found: %v", i, e.err)
		assert.Equal(t, e.process, fault.IsErrProcess(e.err), "%d: process: %v", i, e.err)
	}
}

func TestCodeOf(t *testing.T) {
	items := []struct {
		err  error
		code responsecode.Code
		ok   bool
	}{
		{nil, responsecode.OK, true},
		{fault.NewPreCheck(responsecode.DuplicateTransaction), responsecode.DuplicateTransaction, true},
		{errors.Wrap(fault.NewPreCheck(responsecode.Busy), "context"), responsecode.Busy, true},
		{fault.ErrMaxChildRecordsExceeded, responsecode.MaxChildRecordsExceeded, true},
		{fault.ErrInvalidTransactionID, responsecode.InvalidTransactionID, true},
		{fault.ErrInvalidTransactionBody, responsecode.InvalidTransactionBody, true},
		{fault.ErrRecordNotFound, responsecode.Unknown, false},
	}

	for i, item := range items {
		code, ok := fault.CodeOf(item.err)
		assert.Equal(t, item.ok, ok, "%d: ok", i)
		assert.Equal(t, item.code, code, "%d: code", i)
	}
}

func TestPreCheckMessage(t *testing.T) {
	err := fault.NewPreCheck(responsecode.PlatformTransactionNotCreated)
	assert.Equal(t, "pre-check failed: PLATFORM_TRANSACTION_NOT_CREATED", err.Error())
}

func TestPanicf(t *testing.T) {
	assert.PanicsWithValue(t, "broken: 42", func() {
		fault.Panicf("broken: %d", 42)
	})
}
