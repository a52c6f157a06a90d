package flashcards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cards := Generate("Optics", now)

	require.Len(t, cards, 3)
	assert.Equal(t, []Difficulty{Medium, Hard, Easy}, []Difficulty{cards[0].Difficulty, cards[1].Difficulty, cards[2].Difficulty})
	assert.Equal(t, "What is the main concept of Optics?", cards[0].Question)
	for _, c := range cards {
		assert.Equal(t, "Optics", c.TopicID)
		assert.False(t, c.IsFavorite)
		assert.Equal(t, now, c.CreatedAt)
	}
}

func TestDeckNavigationWraps(t *testing.T) {
	deck := NewDeck("Optics", time.Now())

	assert.Equal(t, 1, deck.View().Position)
	assert.Equal(t, 3, deck.Prev().Position, "prev from first wraps to last")
	assert.Equal(t, 1, deck.Next().Position, "next from last wraps to first")
	assert.Equal(t, 2, deck.Next().Position)
}

func TestDeckFlipResetsOnMove(t *testing.T) {
	deck := NewDeck("Optics", time.Now())

	assert.True(t, deck.Flip().Flipped)
	assert.False(t, deck.Next().Flipped)
	deck.Flip()
	assert.False(t, deck.Prev().Flipped)
	assert.True(t, deck.Flip().Flipped)
	assert.False(t, deck.Flip().Flipped)
}

func TestToggleFavorite(t *testing.T) {
	deck := NewDeck("Optics", time.Now())

	card, err := deck.ToggleFavorite("2")
	require.NoError(t, err)
	assert.True(t, card.IsFavorite)
	assert.True(t, deck.Cards()[1].IsFavorite)
	assert.False(t, deck.Cards()[0].IsFavorite)

	card, err = deck.ToggleFavorite("2")
	require.NoError(t, err)
	assert.False(t, card.IsFavorite)

	_, err = deck.ToggleFavorite("9")
	assert.ErrorIs(t, err, ErrCardNotFound)
}
