// Package checks evaluates normalized Wi-Fi flow events against
// mode-specific conformance rule sets, producing PASS/WARN/FAIL verdicts.
//
// The PSK rule set is the shared substrate: RSN suite consistency during
// association, 4-way handshake completeness and ordering, replay counter
// monotonicity, and MIC presence. The SAE rule set prepends PMF and
// AKM=SAE presence checks and reuses the substrate with SAE defaults; the
// EAP rule set gates on an observed, successful EAP exchange followed by a
// handshake, with the substrate appended by Run.
//
// All checkers are pure functions over their inputs: identical events and
// expectations always produce identical verdicts, and nothing here returns
// an error. FAIL means a protocol invariant was violated given the data;
// WARN means the capture lacks the data needed to assess one.
package checks
