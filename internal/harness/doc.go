// Package harness is the micro-benchmark core: parameter matrix expansion,
// the two-tier fixture lifecycle, timed execution and the correctness oracle.
//
// A benchmark author declares a Group with its Axes and Variants. Each
// Variant provides a TrialSetup that builds a fresh Trial from the group's
// canonical data set. The harness then:
//
//  1. expands the group into one Case per (axis combination, variant),
//  2. runs the group setup once to build the canonical data set,
//  3. for every trial, runs the trial setup outside the timed window,
//     times exactly one Invoke and checks the result against the Trial's
//     Oracle.
//
// A wrong result disqualifies the case: its samples are discarded and it is
// reported as disqualified, never as fast. Sibling cases keep running.
//
// Statistics and rendering live outside this package; Normalize only needs a
// center function to express every variant relative to the group's baseline.
package harness
