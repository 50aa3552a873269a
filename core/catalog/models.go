package catalog

type (
	SubTopic struct {
		ID          string `json:"id" yaml:"id"`
		Title       string `json:"title" yaml:"title"`
		Description string `json:"description" yaml:"description"`
	}

	// Experiment describes one virtual lab of the catalog.
	Experiment struct {
		ID          string     `json:"id" yaml:"id"`
		Title       string     `json:"title" yaml:"title"`
		Description string     `json:"description" yaml:"description"`
		Icon        string     `json:"icon" yaml:"icon"`
		SubTopics   []SubTopic `json:"subtopics,omitempty" yaml:"subtopics"`
	}
)

func (e Experiment) clone() Experiment {
	if e.SubTopics != nil {
		e.SubTopics = append([]SubTopic(nil), e.SubTopics...)
	}
	return e
}
