// Package policy decides which claimed identities may submit, rate or delete.
package policy

import (
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

// Policy holds the rules for write actions. The zero value allows any
// claimed identity to delete any item.
type Policy struct {
	// OwnerOnlyDelete limits deletion to the item's submitter.
	OwnerOnlyDelete bool
}

// CanSubmit requires a claimed identity.
func (Policy) CanSubmit(actor *identity.Identity) bool {
	return actor != nil
}

// CanRate forbids rating without an identity and rating one's own item.
func (Policy) CanRate(actor *identity.Identity, item models.Content) bool {
	return actor != nil && actor.ID != item.OwnerID
}

// CanDelete requires a claimed identity, and ownership when OwnerOnlyDelete
// is set.
func (p Policy) CanDelete(actor *identity.Identity, item models.Content) bool {
	if actor == nil {
		return false
	}
	if p.OwnerOnlyDelete {
		return actor.ID == item.OwnerID
	}
	return true
}
