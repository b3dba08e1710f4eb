// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package responsecode - status values carried by receipts and
// returned to submitting clients
package responsecode

// Code - outcome of a transaction or a submission pre-check
type Code int

// possible status values
const (
	OK                            Code = iota
	InvalidTransaction            Code = iota
	InvalidTransactionID          Code = iota
	InvalidTransactionBody        Code = iota
	InvalidPayerSignature         Code = iota
	InvalidAccountID              Code = iota
	TransactionExpired            Code = iota
	DuplicateTransaction          Code = iota
	Busy                          Code = iota
	NotSupported                  Code = iota
	PlatformTransactionNotCreated Code = iota
	PlatformNotActive             Code = iota
	ReceiptNotFound               Code = iota
	RecordNotFound                Code = iota
	Unknown                       Code = iota
	Success                       Code = iota
	RevertedSuccess               Code = iota
	MaxChildRecordsExceeded       Code = iota
	ConsensusGasExhausted         Code = iota
	ContractRevertExecuted        Code = iota
	FailInvalid                   Code = iota
)

var names = map[Code]string{
	OK:                            "OK",
	InvalidTransaction:            "INVALID_TRANSACTION",
	InvalidTransactionID:          "INVALID_TRANSACTION_ID",
	InvalidTransactionBody:        "INVALID_TRANSACTION_BODY",
	InvalidPayerSignature:         "INVALID_PAYER_SIGNATURE",
	InvalidAccountID:              "INVALID_ACCOUNT_ID",
	TransactionExpired:            "TRANSACTION_EXPIRED",
	DuplicateTransaction:          "DUPLICATE_TRANSACTION",
	Busy:                          "BUSY",
	NotSupported:                  "NOT_SUPPORTED",
	PlatformTransactionNotCreated: "PLATFORM_TRANSACTION_NOT_CREATED",
	PlatformNotActive:             "PLATFORM_NOT_ACTIVE",
	ReceiptNotFound:               "RECEIPT_NOT_FOUND",
	RecordNotFound:                "RECORD_NOT_FOUND",
	Unknown:                       "UNKNOWN",
	Success:                       "SUCCESS",
	RevertedSuccess:               "REVERTED_SUCCESS",
	MaxChildRecordsExceeded:       "MAX_CHILD_RECORDS_EXCEEDED",
	ConsensusGasExhausted:         "CONSENSUS_GAS_EXHAUSTED",
	ContractRevertExecuted:        "CONTRACT_REVERT_EXECUTED",
	FailInvalid:                   "FAIL_INVALID",
}

var codes = func() map[string]Code {
	m := make(map[string]Code, len(names))
	for c, s := range names {
		m[s] = c
	}
	return m
}()

// String - convert the code for printf
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "*Unknown*"
}

// IsSuccessful - true for statuses that leave a transaction's effects in place
func (c Code) IsSuccessful() bool {
	return OK == c || Success == c
}

// MarshalText - convert the code for JSON
func (c Code) MarshalText() ([]byte, error) {
	buffer := []byte(c.String())
	return buffer, nil
}

// UnmarshalText - convert the code from JSON to enumeration
//
// unrecognised names become Unknown
func (c *Code) UnmarshalText(s []byte) error {
	if v, ok := codes[string(s)]; ok {
		*c = v
	} else {
		*c = Unknown
	}
	return nil
}
