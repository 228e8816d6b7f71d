// Package projection folds stored events into the booking read model.
//
// The fold is deterministic and idempotent: applying the same event twice, or
// rebuilding a row from scratch by replaying the full history, always yields
// the same row. The per-row last applied version is the idempotence guard.
package projection
