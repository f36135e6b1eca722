package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

func TestCanRate(t *testing.T) {
	var p Policy
	a := &identity.Identity{ID: "A", Username: "alice"}

	assert.False(t, p.CanRate(a, models.Content{OwnerID: "A"}))
	assert.True(t, p.CanRate(a, models.Content{OwnerID: "B"}))
	assert.False(t, p.CanRate(nil, models.Content{OwnerID: "B"}))
}

func TestCanSubmit(t *testing.T) {
	var p Policy
	assert.True(t, p.CanSubmit(&identity.Identity{ID: "A"}))
	assert.False(t, p.CanSubmit(nil))
}

func TestCanDelete(t *testing.T) {
	a := &identity.Identity{ID: "A"}
	other := models.Content{OwnerID: "B"}
	own := models.Content{OwnerID: "A"}

	var loose Policy
	assert.True(t, loose.CanDelete(a, other))
	assert.True(t, loose.CanDelete(a, own))
	assert.False(t, loose.CanDelete(nil, own))

	strict := Policy{OwnerOnlyDelete: true}
	assert.False(t, strict.CanDelete(a, other))
	assert.True(t, strict.CanDelete(a, own))
	assert.False(t, strict.CanDelete(nil, own))
}
