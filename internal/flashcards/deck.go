// Package flashcards holds transient question/answer decks for a topic.
package flashcards

import (
	"errors"
	"fmt"
	"time"
)

// Difficulty grades a card
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ErrCardNotFound is returned when a card id is not in the deck
var ErrCardNotFound = errors.New("flashcard not found")

// Card is a single flashcard. IsFavorite is its only mutable field.
type Card struct {
	ID         string     `json:"id"`
	TopicID    string     `json:"topicId"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"createdAt"`
	IsFavorite bool       `json:"isFavorite"`
}

// Generate builds the cards for topic
func Generate(topic string, now time.Time) []Card {
	return []Card{
		{
			ID:         "1",
			TopicID:    topic,
			Question:   fmt.Sprintf("What is the main concept of %s?", topic),
			Answer:     fmt.Sprintf("The main concept involves understanding the fundamental principles and applications of %s.", topic),
			Difficulty: Medium,
			CreatedAt:  now,
		},
		{
			ID:         "2",
			TopicID:    topic,
			Question:   fmt.Sprintf("How is %s applied in real life?", topic),
			Answer:     fmt.Sprintf("%s has practical applications in various fields including science, technology, and everyday problem-solving.", topic),
			Difficulty: Hard,
			CreatedAt:  now,
		},
		{
			ID:         "3",
			TopicID:    topic,
			Question:   fmt.Sprintf("What are the key components of %s?", topic),
			Answer:     "The key components include theoretical foundations, practical applications, and real-world examples.",
			Difficulty: Easy,
			CreatedAt:  now,
		},
	}
}

// Deck tracks the card being viewed and whether it is flipped
type Deck struct {
	Topic   string
	cards   []Card
	index   int
	flipped bool
}

// NewDeck generates a deck for topic
func NewDeck(topic string, now time.Time) *Deck {
	return &Deck{Topic: topic, cards: Generate(topic, now)}
}

// View is what the learner currently sees
type View struct {
	Topic    string `json:"topic"`
	Card     Card   `json:"card"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Flipped  bool   `json:"flipped"`
}

func (d *Deck) View() View {
	return View{
		Topic:    d.Topic,
		Card:     d.cards[d.index],
		Position: d.index + 1,
		Total:    len(d.cards),
		Flipped:  d.flipped,
	}
}

// Next moves forward, wrapping to the first card
func (d *Deck) Next() View {
	d.index = (d.index + 1) % len(d.cards)
	d.flipped = false
	return d.View()
}

// Prev moves back, wrapping to the last card
func (d *Deck) Prev() View {
	d.index = (d.index - 1 + len(d.cards)) % len(d.cards)
	d.flipped = false
	return d.View()
}

// Flip toggles between question and answer
func (d *Deck) Flip() View {
	d.flipped = !d.flipped
	return d.View()
}

// ToggleFavorite flips the favorite flag of the card with id
func (d *Deck) ToggleFavorite(id string) (Card, error) {
	for i := range d.cards {
		if d.cards[i].ID == id {
			d.cards[i].IsFavorite = !d.cards[i].IsFavorite
			return d.cards[i], nil
		}
	}
	return Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// Cards returns a copy of every card in order
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
