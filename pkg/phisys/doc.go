// SPDX-License-Identifier: MPL-2.0

// Package phisys holds the Phi system model: modules, rules, generators,
// transformations, and the composition graph linking modules through
// imports.
//
// A System is built in two phases. During construction, modules are defined,
// wired with imports, and populated with local declarations; construction is
// a single-writer, sequential phase. Finalize transitions the system to a
// read-only state exactly once. A finalized System is immutable and safe for
// concurrent readers, including concurrent validation calls.
//
// Rule inheritance is resolved by EffectiveRules: a depth-first walk of the
// import graph that visits imports in declaration order, collects each
// module's local rules the first time the module is seen, and keeps full
// attribution to the declaring module. Diamond imports therefore contribute
// their rules exactly once.
package phisys
