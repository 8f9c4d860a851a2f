// Package export converts answered questions into learning objects for the
// external PDF renderer.
package export

import (
	"strings"
	"time"

	"github.com/askchem/askchem/internal/domain/answer"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// LearningObject is the export payload consumed by the PDF renderer. Field
// names follow its ingestion contract.
type LearningObject struct {
	Title          string   `json:"title"`
	Explanation    string   `json:"explanation"`
	Examples       []string `json:"examples"`
	CommonMistakes []string `json:"common_mistakes"`
	Language       string   `json:"language"`
	Date           string   `json:"date"`
}

// Builder assembles learning objects with a fixed language tag. The clock is
// injectable for tests.
type Builder struct {
	language string
	now      func() time.Time
}

func NewBuilder(language string) *Builder {
	if language == "" {
		language = "en"
	}
	return &Builder{language: language, now: time.Now}
}

// Build converts one answered question into a LearningObject. Error answers
// (no match, malformed solver output) have nothing to teach and are rejected.
func (b *Builder) Build(question string, a answer.Answer) (*LearningObject, error) {
	if a.IsError() {
		return nil, pkgerrors.New(pkgerrors.ErrCodeValidation, "cannot export an error answer")
	}

	title := strings.TrimSpace(question)
	if title == "" {
		title = a.FinalAnswer
	}

	var explanation strings.Builder
	explanation.WriteString(a.AnswerText)
	if steps := strings.Join(a.Steps, "\n"); steps != "" {
		explanation.WriteString("\n\n")
		explanation.WriteString(steps)
	}

	var examples []string
	if r := strings.TrimSpace(a.Reaction); r != "" {
		examples = append(examples, r)
	}
	if examples == nil {
		examples = []string{}
	}

	var mistakes []string
	if m := strings.TrimSpace(a.CommonMistake); m != "" {
		mistakes = append(mistakes, m)
	}
	if mistakes == nil {
		mistakes = []string{}
	}

	return &LearningObject{
		Title:          title,
		Explanation:    explanation.String(),
		Examples:       examples,
		CommonMistakes: mistakes,
		Language:       b.language,
		Date:           b.now().UTC().Format("2006-01-02"),
	}, nil
}
