// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listener

import (
	"encoding/json"

	"github.com/bitmark-inc/txguard/account"
	"github.com/bitmark-inc/txguard/fault"
	"github.com/bitmark-inc/txguard/mode"
	"github.com/bitmark-inc/txguard/record"
	"github.com/bitmark-inc/txguard/responsecode"
	"github.com/bitmark-inc/txguard/transactionid"
	"github.com/bitmark-inc/txguard/txbody"
)

// type to hold server info
type serverInfo struct {
	Version string `json:"version"`
	Chain   string `json:"chain"`
	Profile string `json:"profile"`
	Normal  bool   `json:"normal"`
}

// all records for one identifier
type recordSet struct {
	Priority   *record.Record   `json:"priority"`
	Duplicates []*record.Record `json:"duplicates"`
	Children   []*record.Record `json:"children"`
}

// process one request, returns the reply frames
func (lstn *Listener) process(data [][]byte) [][]byte {

	log := lstn.log

	if len(data) < 1 {
		return errorReply(fault.ErrMissingParameters)
	}

	fn := string(data[0])
	parameters := data[1:]

	log.Debugf("received message: %q  parameters: %d", fn, len(parameters))

	result := []byte{}
	err := error(nil)

	switch fn {
	case "S": // submit
		if 1 != len(parameters) {
			err = fault.ErrMissingParameters
			break
		}
		code := lstn.submit(parameters[0])
		result = []byte(code.String())

	case "R": // priority receipt
		if 1 != len(parameters) {
			err = fault.ErrMissingParameters
			break
		}
		id, e := transactionid.FromString(string(parameters[0]))
		if nil != e {
			err = e
			break
		}
		receipt := lstn.records.GetPriorityReceipt(id)
		if nil == receipt {
			err = fault.ErrRecordNotFound
			break
		}
		result, err = json.Marshal(receipt)

	case "Q": // all records of an identifier
		if 1 != len(parameters) {
			err = fault.ErrMissingParameters
			break
		}
		id, e := transactionid.FromString(string(parameters[0]))
		if nil != e {
			err = e
			break
		}
		set := recordSet{
			Priority:   lstn.records.GetPriorityRecord(id),
			Duplicates: lstn.records.GetDuplicateRecords(id),
			Children:   lstn.records.GetChildRecords(id),
		}
		if nil == set.Priority {
			err = fault.ErrRecordNotFound
			break
		}
		result, err = json.Marshal(set)

	case "P": // receipts by payer
		if 1 != len(parameters) {
			err = fault.ErrMissingParameters
			break
		}
		payer, e := account.FromString(string(parameters[0]))
		if nil != e {
			err = e
			break
		}
		result, err = json.Marshal(lstn.records.GetReceiptsByPayer(payer))

	case "I": // server information
		info := serverInfo{
			Version: lstn.version,
			Chain:   mode.ChainName(),
			Profile: mode.Profile(),
			Normal:  mode.Is(mode.Normal),
		}
		result, err = json.Marshal(info)
		fault.PanicIfError("JSON encode error", err)

	default:
		err = fault.ErrUnknownRequest
	}

	if nil != err {
		log.Debugf("request: %q  error: %s", fn, err)
		return errorReply(err)
	}

	return [][]byte{[]byte(fn), result}
}

// structural checks, pending marker then the submission gate
func (lstn *Listener) submit(raw []byte) responsecode.Code {
	if !mode.Is(mode.Normal) {
		return responsecode.PlatformNotActive
	}

	body, err := txbody.Packed(raw).Unpack()
	if nil == err {
		err = body.ID.Validate()
	}
	if nil != err {
		code, _ := fault.CodeOf(err)
		return code
	}

	lstn.records.AddPreConsensus(body.ID)

	err = lstn.gate.Submit(body, raw)
	code, known := fault.CodeOf(err)
	if !known {
		lstn.log.Errorf("submit: %s  error: %s", body.ID, err)
	}
	if responsecode.OK != code {
		lstn.log.Infof("submit: %s  rejected: %s", body.ID, code)
	}
	return code
}

// an error packet
func errorReply(err error) [][]byte {
	return [][]byte{[]byte("E"), []byte(err.Error())}
}
