// Package accesscontrol implements role management inside the
// identity-access context.
//
// Two roles exist: administrator, fixed at system initialization, and
// organizer, granted and revoked by the administrator through audited
// commands. The check use case is the single capability predicate consulted
// by every mutating entry point in the competition engine.
package accesscontrol
