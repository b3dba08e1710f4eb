// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txguard/responsecode"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyFinalised         = ProcessError("already finalised")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrDatabaseIsNotSet         = ProcessError("database is not set")
	ErrInvalidAccount           = InvalidError("invalid account")
	ErrInvalidChain             = InvalidError("invalid chain")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidNonce             = InvalidError("invalid nonce")
	ErrInvalidProfile           = InvalidError("invalid profile")
	ErrInvalidTimestamp         = InvalidError("invalid timestamp")
	ErrInvalidTransactionBody   = InvalidError("invalid transaction body")
	ErrInvalidTransactionID     = InvalidError("invalid transaction id")
	ErrMaxChildRecordsExceeded  = LimitError("maximum child records exceeded")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrPlatformClosed           = ProcessError("platform closed")
	ErrRecordExists             = ExistsError("record exists")
	ErrRecordNotFound           = NotFoundError("record not found")
	ErrTruncatedRecord          = InvalidError("truncated record")
	ErrUnknownRequest           = InvalidError("unknown request")
	ErrUnsupportedSocketAddress = InvalidError("unsupported socket address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LimitError) Error() string    { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrLimit(e error) bool    { _, ok := errors.Cause(e).(LimitError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }

// PreCheckError - a rejection reported back to the submitting client
type PreCheckError struct {
	Code responsecode.Code
}

// NewPreCheck - create a rejection for a response code
func NewPreCheck(code responsecode.Code) error {
	return &PreCheckError{Code: code}
}

func (e *PreCheckError) Error() string {
	return "pre-check failed: " + e.Code.String()
}

// CodeOf - response code carried by an error
//
// limit errors map to the resource status that aborts the transaction,
// any other error has no code
func CodeOf(err error) (responsecode.Code, bool) {
	if nil == err {
		return responsecode.OK, true
	}
	switch e := errors.Cause(err).(type) {
	case *PreCheckError:
		return e.Code, true
	case LimitError:
		if e == ErrMaxChildRecordsExceeded {
			return responsecode.MaxChildRecordsExceeded, true
		}
	case InvalidError:
		switch e {
		case ErrInvalidTransactionID:
			return responsecode.InvalidTransactionID, true
		case ErrInvalidTransactionBody:
			return responsecode.InvalidTransactionBody, true
		}
	}
	return responsecode.Unknown, false
}
