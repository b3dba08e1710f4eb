// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - load daemon settings from a Lua script
//
// the script returns a table which is decoded into a struct using
// "gluamapper" field tags. the full Lua base library is open so a
// script may read files or call os.getenv to fill in values.
package configuration
