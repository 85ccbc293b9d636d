/*
claim.go - Exactly-once attribution tracking

PURPOSE:
  A ClaimSet records which transaction IDs have already been attributed to
  some report row within one reconciliation pass. Each metric family owns
  its own ClaimSet; the families ask different questions over overlapping
  data and never share claim state.

  The set is an explicit value passed into the matcher rather than a
  package-level variable, so families can run concurrently and tests can
  inspect claim state in isolation.
*/
package recon

// ClaimSet is the set of transaction IDs claimed within one family pass.
// Not safe for concurrent use; one ClaimSet belongs to exactly one
// goroutine for the duration of a pass.
type ClaimSet struct {
	ids map[string]struct{}
}

// NewClaimSet returns an empty ClaimSet.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{ids: make(map[string]struct{})}
}

// Claim records an ID. Claiming an already-claimed ID is a no-op.
func (c *ClaimSet) Claim(id string) {
	c.ids[id] = struct{}{}
}

// Claimed reports whether an ID has been claimed in this pass.
func (c *ClaimSet) Claimed(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Len returns the number of claimed IDs.
func (c *ClaimSet) Len() int {
	return len(c.ids)
}
