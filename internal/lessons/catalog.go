// Package lessons renders templated lesson content for each learning style.
package lessons

import (
	"fmt"
	"strings"

	"learnmate/internal/models"
)

// Content is everything the renderers can show for one topic
type Content struct {
	Visual    VisualLesson
	Auditory  AuditoryLesson
	Questions []Question
}

type catalogEntry struct {
	keyword string
	build   func(topic string) Content
}

// catalog is consulted in order; the first keyword contained in the
// lowercased topic wins.
var catalog = []catalogEntry{
	{keyword: "newton", build: newtonContent},
}

// Lookup returns the content for topic, falling back to the generic templates
func Lookup(topic string) Content {
	normalized := strings.ToLower(strings.TrimSpace(topic))
	for _, entry := range catalog {
		if strings.Contains(normalized, entry.keyword) {
			return entry.build(topic)
		}
	}
	return defaultContent(topic)
}

// Lesson is a rendered lesson for a single style. Exactly one of the
// style-specific fields is set.
type Lesson struct {
	Topic     string               `json:"topic"`
	Style     models.LearningStyle `json:"style"`
	Visual    *VisualLesson        `json:"visual,omitempty"`
	Auditory  *AuditoryLesson      `json:"auditory,omitempty"`
	Questions []Question           `json:"questions,omitempty"`
}

// Render builds the lesson for topic in the given style
func Render(style models.LearningStyle, topic string) (Lesson, error) {
	content := Lookup(topic)
	lesson := Lesson{Topic: topic, Style: style}

	switch style {
	case models.StyleVisual:
		lesson.Visual = &content.Visual
	case models.StyleAuditory:
		lesson.Auditory = &content.Auditory
	case models.StyleKinesthetic:
		lesson.Questions = content.Questions
	default:
		return Lesson{}, fmt.Errorf("unknown learning style %q", style)
	}
	return lesson, nil
}

func defaultContent(topic string) Content {
	return Content{
		Visual: VisualLesson{
			Overview: fmt.Sprintf("%s is a fundamental concept that can be understood through visual organization and structured learning.", topic),
			KeyPoints: []string{
				fmt.Sprintf("Main principle of %s", topic),
				fmt.Sprintf("How %s works in practice", topic),
				fmt.Sprintf("Real-world applications of %s", topic),
				fmt.Sprintf("Common misconceptions about %s", topic),
			},
			VisualElements: []string{
				"Concept diagram showing relationships",
				"Step-by-step process visualization",
				"Comparison charts and tables",
				"Timeline or flowchart representation",
			},
			Summary: fmt.Sprintf("Understanding %s requires breaking down complex ideas into visual components that show relationships and processes clearly.", topic),
		},
		Auditory: AuditoryLesson{
			Introduction: fmt.Sprintf("Welcome to your personalized audio lesson on %s. In this session, we'll explore this topic through detailed explanations designed for auditory learners.", topic),
			Sections: []Section{
				{
					Title:   "Introduction and Overview",
					Content: fmt.Sprintf("Let's begin with an introduction to %s. This concept is important because it helps us understand fundamental principles that apply in many situations.", topic),
				},
				{
					Title:   "Detailed Explanation",
					Content: fmt.Sprintf("Now, let's dive deeper into %s. The key aspects you need to understand include the main principles, how they work, and why they matter.", topic),
				},
				{
					Title:   "Examples and Applications",
					Content: fmt.Sprintf("To help you better understand %s, let's look at some real-world examples and practical applications where this concept is used.", topic),
				},
				{
					Title:   "Summary and Review",
					Content: fmt.Sprintf("Let's review what we've learned about %s. Remember the key points we discussed and how they connect to create a complete understanding.", topic),
				},
			},
		},
		Questions: []Question{
			{
				Prompt: fmt.Sprintf("What is the main principle behind %s?", topic),
				Options: []string{
					"It follows basic fundamental laws",
					"It has multiple applications",
					"It requires understanding of context",
					"All of the above",
				},
				Correct:     3,
				Explanation: fmt.Sprintf("%s encompasses fundamental principles with multiple applications that require contextual understanding.", topic),
			},
			{
				Prompt: fmt.Sprintf("How is %s commonly applied in real-world scenarios?", topic),
				Options: []string{
					"Through theoretical analysis only",
					"In practical problem-solving",
					"Only in academic settings",
					"It has no real applications",
				},
				Correct:     1,
				Explanation: fmt.Sprintf("%s is most valuable when applied to practical problem-solving in real-world scenarios.", topic),
			},
			{
				Prompt: fmt.Sprintf("What makes %s important to understand?", topic),
				Options: []string{
					"It's required for tests",
					"It builds foundational knowledge",
					"It's easy to memorize",
					"It's trending in social media",
				},
				Correct:     1,
				Explanation: fmt.Sprintf("Understanding %s is important because it builds foundational knowledge for more complex concepts.", topic),
			},
		},
	}
}

func newtonContent(string) Content {
	return Content{
		Visual: VisualLesson{
			Overview: "Newton's Laws of Motion describe the relationship between forces and motion, forming the foundation of classical mechanics.",
			KeyPoints: []string{
				"First Law: An object at rest stays at rest unless acted upon by force",
				"Second Law: Force equals mass times acceleration (F=ma)",
				"Third Law: For every action, there is an equal and opposite reaction",
				"These laws apply to all objects in the universe",
			},
			VisualElements: []string{
				"Force diagrams showing vector directions",
				"Before/after motion illustrations",
				"Real-world examples (car braking, rocket launch)",
				"Mathematical formula breakdowns",
			},
			Summary: "Newton's Laws provide a visual framework for understanding how forces create motion in our everyday world.",
		},
		Auditory: AuditoryLesson{
			Introduction: "Welcome to your audio lesson on Newton's Laws of Motion. These three fundamental laws describe the relationship between forces acting on a body and its motion due to those forces.",
			Sections: []Section{
				{
					Title:   "Newton's First Law",
					Content: "Newton's First Law, also known as the Law of Inertia, states that an object at rest will remain at rest, and an object in motion will remain in motion at constant velocity, unless acted upon by an external force. Think of a hockey puck sliding on ice - it keeps moving until friction or a wall stops it.",
				},
				{
					Title:   "Newton's Second Law",
					Content: "The Second Law establishes the relationship between force, mass, and acceleration. It states that Force equals mass times acceleration, or F equals m times a. This means that the more force you apply to an object, the more it will accelerate. Conversely, heavier objects need more force to achieve the same acceleration.",
				},
				{
					Title:   "Newton's Third Law",
					Content: "The Third Law states that for every action, there is an equal and opposite reaction. When you walk, you push against the ground, and the ground pushes back with equal force. This is why you can move forward. Rockets work on this principle - they push exhaust gases down, and the gases push the rocket up.",
				},
				{
					Title:   "Applications and Summary",
					Content: "Newton's Laws are everywhere in our daily lives. From the way cars brake using the first law, to how rockets launch using the third law. Understanding these principles helps us predict and control motion in engineering, sports, and space exploration.",
				},
			},
		},
		Questions: []Question{
			{
				Prompt: "According to Newton's First Law, what happens to an object at rest?",
				Options: []string{
					"It will start moving on its own",
					"It will remain at rest unless acted upon by a force",
					"It will gradually slow down",
					"It will move in a circular path",
				},
				Correct:     1,
				Explanation: "Newton's First Law (Law of Inertia) states that an object at rest will remain at rest unless acted upon by an external force.",
			},
			{
				Prompt: "What does Newton's Second Law tell us about force and acceleration?",
				Options: []string{
					"Force and acceleration are unrelated",
					"Force equals mass times acceleration (F=ma)",
					"Acceleration always equals force",
					"Mass doesn't affect acceleration",
				},
				Correct:     1,
				Explanation: "Newton's Second Law establishes that Force = mass × acceleration (F=ma), showing the direct relationship between force, mass, and acceleration.",
			},
			{
				Prompt: "Which example best demonstrates Newton's Third Law?",
				Options: []string{
					"A ball rolling down a hill",
					"Walking - you push the ground, the ground pushes back",
					"A car accelerating on a highway",
					"Water flowing in a river",
				},
				Correct:     1,
				Explanation: "Newton's Third Law states that for every action there is an equal and opposite reaction. Walking demonstrates this perfectly - you push against the ground and the ground pushes back with equal force.",
			},
		},
	}
}
