// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txguard/configuration"
)

const testingDirName = "testing"

type limits struct {
	MaxPreceding int `gluamapper:"max_preceding_records"`
	MaxFollowing int `gluamapper:"max_following_records"`
}

type testConfiguration struct {
	Chain     string            `gluamapper:"chain"`
	Member    int64             `gluamapper:"node_member"`
	Consensus limits            `gluamapper:"consensus"`
	Listen    []string          `gluamapper:"listen"`
	Levels    map[string]string `gluamapper:"levels"`
	Untouched string            `gluamapper:"untouched"`
}

func writeFile(t *testing.T, name string, content string) string {
	_ = os.MkdirAll(testingDirName, 0700)
	fileName := filepath.Join(testingDirName, name)
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write: %s", err)
	}
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	fileName := writeFile(t, "good.conf", `
local M = {}
M.chain = "testnet"
M.node_member = 3
M.consensus = {
    max_preceding_records = 3,
    max_following_records = 50,
}
M.listen = { "tcp://127.0.0.1:2136", "tcp://[::1]:2136" }
M.levels = { main = "info", DEFAULT = "error" }
if arg.node then
    M.node_member = tonumber(arg.node)
end
return M
`)

	options := testConfiguration{Untouched: "default"}
	err := configuration.ParseConfigurationFile(fileName, &options, map[string]string{"node": "7"})
	assert.Nil(t, err, "parse")

	assert.Equal(t, "testnet", options.Chain)
	assert.Equal(t, int64(7), options.Member, "variable override")
	assert.Equal(t, limits{MaxPreceding: 3, MaxFollowing: 50}, options.Consensus)
	assert.Equal(t, []string{"tcp://127.0.0.1:2136", "tcp://[::1]:2136"}, options.Listen)
	assert.Equal(t, "info", options.Levels["main"])
	assert.Equal(t, "default", options.Untouched, "default kept")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	options := testConfiguration{}

	err := configuration.ParseConfigurationFile(filepath.Join(testingDirName, "missing.conf"), &options, nil)
	assert.NotNil(t, err, "missing file")

	fileName := writeFile(t, "syntax.conf", `return {`)
	err = configuration.ParseConfigurationFile(fileName, &options, nil)
	assert.NotNil(t, err, "syntax error")

	fileName = writeFile(t, "notable.conf", `return 42`)
	err = configuration.ParseConfigurationFile(fileName, &options, nil)
	assert.NotNil(t, err, "not a table")
}

func TestParseConfigurationString(t *testing.T) {
	options := testConfiguration{}
	err := configuration.ParseConfigurationString("inline", `
return {
    chain = arg.chain,
    untouched = arg[0],
}`, &options, map[string]string{"chain": "local"})
	assert.Nil(t, err, "parse")
	assert.Equal(t, "local", options.Chain)
	assert.Equal(t, "inline", options.Untouched, "arg[0]")

	err = configuration.ParseConfigurationString("broken", `error("stop")`, &options, nil)
	assert.NotNil(t, err, "script error")
}
