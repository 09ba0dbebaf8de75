package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToggleHelpful(t *testing.T) {
	review := Review{}
	alice := uuid.New()
	bob := uuid.New()

	assert.True(t, review.ToggleHelpful(alice))
	assert.Equal(t, 1, review.Helpful)
	assert.True(t, review.VotedHelpful(alice))

	assert.True(t, review.ToggleHelpful(bob))
	assert.Equal(t, 2, review.Helpful)

	// Voting again withdraws the vote.
	assert.False(t, review.ToggleHelpful(alice))
	assert.Equal(t, 1, review.Helpful)
	assert.False(t, review.VotedHelpful(alice))
	assert.True(t, review.VotedHelpful(bob))
}
