package shader

import "fmt"

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (stage Stage) String() string {
	switch stage {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(stage))
}

// Source is the complete source text of a single shader stage. The text must
// carry its own #version directive; it is passed to the compiler untouched.
type Source struct {
	stage Stage
	text  string
}

func NewSource(stage Stage, text string) Source {
	return Source{stage: stage, text: text}
}

func VertexSource(text string) Source {
	return NewSource(StageVertex, text)
}

func FragmentSource(text string) Source {
	return NewSource(StageFragment, text)
}

func (s Source) Stage() Stage { return s.stage }

func (s Source) Text() string { return s.text }

func (s Source) validate(want Stage) error {
	if s.stage != want {
		return fmt.Errorf("%w: expected %s source, got %s", ErrInvalidSource, want, s.stage)
	}
	if s.text == "" {
		return fmt.Errorf("%w: empty %s source", ErrInvalidSource, want)
	}
	return nil
}
