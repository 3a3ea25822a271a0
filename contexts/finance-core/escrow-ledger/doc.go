// Package escrowledger keeps participant balances, escrow holds, and the
// append-only transfer log for the finance-core context. Prize pools are
// held against an escrow reference created by the competition context and
// released from it exactly once per payout leg.
package escrowledger
