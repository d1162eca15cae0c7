// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package display

const (
	Tool   = "sjd"
	Banner = `
      _     _
  ___(_)___| |
 / __| / _ | |      sorted-json-diff
 \__ \ | (_| |      canonicalize, then compare
 |___/_|\__,_|      vversion
     _/ |
    |__/
`
	DocRoot = "https://github.com/eric-lim-idexx/sorted-json-diff/blob/main/README.md"
)
