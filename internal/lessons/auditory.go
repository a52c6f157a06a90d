package lessons

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSectionNotFound is returned for a section index outside the lesson
var ErrSectionNotFound = errors.New("section not found")

// Section is one titled passage of an audio lesson
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Script is the text spoken when the section is played on its own
func (s Section) Script() string {
	return s.Title + ". " + s.Content
}

// AuditoryLesson is an introduction followed by ordered sections
type AuditoryLesson struct {
	Introduction string    `json:"introduction"`
	Sections     []Section `json:"sections"`
}

// Auditory renders the audio lesson for topic
func Auditory(topic string) AuditoryLesson {
	return Lookup(topic).Auditory
}

// SectionScript returns the spoken text for section i
func (l AuditoryLesson) SectionScript(i int) (string, error) {
	if i < 0 || i >= len(l.Sections) {
		return "", fmt.Errorf("%w: %d", ErrSectionNotFound, i)
	}
	return l.Sections[i].Script(), nil
}

// FullScript is the introduction followed by every section script
func (l AuditoryLesson) FullScript() string {
	scripts := make([]string, len(l.Sections))
	for i, s := range l.Sections {
		scripts[i] = s.Script()
	}
	return l.Introduction + ". " + strings.Join(scripts, ". ")
}
