package types

// ClaimOutcome reports the result of attempting to claim an orphaned ticket.
// Claiming an already-owned ticket is a guarded no-op, not an error, so the
// outcome is typed instead of collapsed into a boolean.
type ClaimOutcome string

const (
	ClaimOutcomeClaimed      ClaimOutcome = "claimed"
	ClaimOutcomeAlreadyOwned ClaimOutcome = "already_owned"
	ClaimOutcomeNotFound     ClaimOutcome = "not_found"
)

// String returns the string representation of the claim outcome
func (o ClaimOutcome) String() string {
	return string(o)
}
