// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/pkg/errors"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

// struct tag holding the Lua key of each configuration field
const tagName = "gluamapper"

// ParseConfigurationFile - execute a Lua configuration file and
// decode the table it returns into config
//
// variables are visible to the script as arg.<name> and arg[0] is
// the file name
func ParseConfigurationFile(fileName string, config interface{}, variables map[string]string) error {
	return parse(fileName, config, variables, func(L *lua.LState) error {
		return L.DoFile(fileName)
	})
}

// ParseConfigurationString - as ParseConfigurationFile but the script
// is supplied directly, name only appears in messages and arg[0]
func ParseConfigurationString(name string, source string, config interface{}, variables map[string]string) error {
	return parse(name, config, variables, func(L *lua.LState) error {
		return L.DoString(source)
	})
}

func parse(name string, config interface{}, variables map[string]string, execute func(*lua.LState) error) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()
	L.SetGlobal("arg", arguments(name, variables))

	if err := execute(L); nil != err {
		return errors.Wrapf(err, "configuration: %q", name)
	}

	result, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return errors.Errorf("configuration: %q did not return a table", name)
	}

	mapper := gluamapper.NewMapper(gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  tagName,
	})
	if err := mapper.Map(result, config); nil != err {
		return errors.Wrapf(err, "configuration: %q", name)
	}
	return nil
}

func arguments(name string, variables map[string]string) *lua.LTable {
	arg := &lua.LTable{}
	arg.RawSetInt(0, lua.LString(name))
	for k, v := range variables {
		arg.RawSetString(k, lua.LString(v))
	}
	return arg
}
