// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE toolchain with the small surface the rest of
// the codebase needs: schema-validated decoding of configuration files and
// shared error formatting for CUE evaluation failures. The rule predicate
// layer (pkg/phiexpr) builds on the same CUE context conventions.
package cueutil
