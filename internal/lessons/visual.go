package lessons

// VisualLesson organizes a topic into an overview, numbered key points and
// suggested diagrams.
type VisualLesson struct {
	Overview       string   `json:"overview"`
	KeyPoints      []string `json:"keyPoints"`
	VisualElements []string `json:"visualElements"`
	Summary        string   `json:"summary"`
}

// Visual renders the visual lesson for topic
func Visual(topic string) VisualLesson {
	return Lookup(topic).Visual
}
