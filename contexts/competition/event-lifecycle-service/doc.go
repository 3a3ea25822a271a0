// Package eventlifecycle implements the competition lifecycle engine inside
// the competition context.
//
// The module owns event registration and escrow, team formation, the voting
// window, ranking finalization, and exactly-once prize distribution. Each
// event aggregate is a single-writer unit of mutation; business rules live
// in application/domain layers and infrastructure stays behind ports and
// adapters.
package eventlifecycle
