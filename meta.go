// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package sortedjsondiff

var Version = "0.0.0"

const Repository = "https://github.com/eric-lim-idexx/sorted-json-diff"
