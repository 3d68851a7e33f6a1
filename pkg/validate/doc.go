// SPDX-License-Identifier: MPL-2.0

// Package validate implements the V* validation loop: given a finalized
// system, a module, and a transformation invocation, it resolves the
// module's effective rule set (local plus inherited), evaluates every rule
// predicate once against the invocation, and produces a Verdict under the
// hard/soft resolution protocol.
//
// Hard violations reject the invocation outright. Soft violations are
// handed to a pluggable conflict-resolution Policy; the default policy
// unconditionally deactivates the rule for the current invocation only.
// Deactivation is recorded in the Verdict and nowhere else: no rule, module,
// or system state is mutated, so repeated identical calls repeat the same
// outcome and validation calls may run concurrently without locks.
package validate
