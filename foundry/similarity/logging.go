package similarity

import "go.uber.org/zap"

// diagnosticsLogger holds the optional structured logger for similarity
// operations. nil if diagnostics logging is disabled (default), mirroring
// telemetrySystem's nil-by-default pattern in telemetry.go.
var diagnosticsLogger *zap.Logger

// EnableDiagnosticsLogging wires a *zap.Logger into the similarity
// package for low-volume diagnostic events; the only event logged is the
// block engine's hint escalation (logHintEscalation). Unlike telemetry,
// this is for human-readable events, not counters: the dispatch policy in
// dispatch.go runs in hot loops, so only that slow-path branch logs here.
func EnableDiagnosticsLogging(logger *zap.Logger) {
	diagnosticsLogger = logger
}

// DisableDiagnosticsLogging turns diagnostics logging back off.
func DisableDiagnosticsLogging() {
	diagnosticsLogger = nil
}

// logHintEscalation records that the §4.8 hint-escalation loop needed
// at least one doubling to beat the requested bound k, which signals
// that a caller's hint was far too optimistic for the actual edit
// distance between the two sequences.
func logHintEscalation(k, finalHint, rounds int) {
	if diagnosticsLogger == nil {
		return
	}
	diagnosticsLogger.Debug("levenshtein hint escalation",
		zap.Int("k", k),
		zap.Int("final_hint", finalHint),
		zap.Int("rounds", rounds),
	)
}
