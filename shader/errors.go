package shader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Phase is the step of a build at which a failure was detected.
type Phase int

const (
	PhaseVertexCompile Phase = iota + 1
	PhaseFragmentCompile
	PhaseLink
)

func (phase Phase) String() string {
	switch phase {
	case PhaseVertexCompile:
		return "vertex compile"
	case PhaseFragmentCompile:
		return "fragment compile"
	case PhaseLink:
		return "link"
	}
	return fmt.Sprintf("Phase(%d)", int(phase))
}

// Stage returns the stage whose compilation failed. It is zero for link
// failures.
func (phase Phase) Stage() Stage {
	switch phase {
	case PhaseVertexCompile:
		return StageVertex
	case PhaseFragmentCompile:
		return StageFragment
	}
	return 0
}

// BuildError describes the first failure of a Build call.
type BuildError struct {
	Phase     Phase
	// Log is the compiler or linker info log.
	Log       string
	// Truncated is set when Log was cut to the builder's maximum log length.
	Truncated bool
}

func (err *BuildError) headline() string {
	switch err.Phase {
	case PhaseVertexCompile:
		return "error compiling vertex shader"
	case PhaseFragmentCompile:
		return "error compiling fragment shader"
	case PhaseLink:
		return "error linking program"
	}
	return "error building program"
}

func (err *BuildError) Error() string {
	if err.Log == "" {
		return err.headline()
	}
	return err.headline() + ":\n" + err.Log
}

// Marker is a single diagnostic parsed from a log.
type Marker struct {
	// Source is the index of the source string the driver attributes the
	// message to.
	Source   int
	Line     int
	Column   int
	Severity string
	Message  string
}

var (
	// Mesa: 0:3(2): error: syntax error, unexpected ...
	mesaMarkerRe = regexp.MustCompile(`^(\d+):(\d+)\((\d+)\): (\w+): (.*)$`)
	// NVIDIA: 0(3) : error C0000: syntax error, unexpected ...
	nvidiaMarkerRe = regexp.MustCompile(`^(\d+)\((\d+)\) : (\w+) \w+: (.*)$`)
	// AMD and Intel on Windows: ERROR: 0:3: 'a' : undeclared identifier
	glslangMarkerRe = regexp.MustCompile(`^(\w+): (\d+):(\d+): (.*)$`)
)

// Markers parses the log into diagnostics. Lines in unrecognised formats are
// skipped.
func (err *BuildError) Markers() []Marker {
	var markers []Marker
	for _, line := range strings.Split(err.Log, "\n") {
		line = strings.TrimSpace(line)
		if m, ok := parseMarker(line); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

func parseMarker(line string) (Marker, bool) {
	if sm := mesaMarkerRe.FindStringSubmatch(line); sm != nil {
		return Marker{
			Source:   atoi(sm[1]),
			Line:     atoi(sm[2]),
			Column:   atoi(sm[3]),
			Severity: strings.ToLower(sm[4]),
			Message:  sm[5],
		}, true
	}
	if sm := nvidiaMarkerRe.FindStringSubmatch(line); sm != nil {
		return Marker{
			Source:   atoi(sm[1]),
			Line:     atoi(sm[2]),
			Severity: strings.ToLower(sm[3]),
			Message:  sm[4],
		}, true
	}
	if sm := glslangMarkerRe.FindStringSubmatch(line); sm != nil {
		return Marker{
			Source:   atoi(sm[2]),
			Line:     atoi(sm[3]),
			Severity: strings.ToLower(sm[1]),
			Message:  sm[4],
		}, true
	}
	return Marker{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// PrettyPrint writes the error to out, quoting the lines of src that the
// diagnostics point at. The raw log is written if it could not be parsed.
func (err *BuildError) PrettyPrint(out io.Writer, src Source, colored bool) {
	headColor := color.New(color.FgRed, color.Bold)
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	noteColor := color.New(color.Faint)
	for _, c := range []*color.Color{headColor, errColor, warnColor, noteColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	headColor.Fprintln(out, err.headline())
	markers := err.Markers()
	if len(markers) == 0 {
		if err.Log != "" {
			fmt.Fprintln(out, err.Log)
		}
		if err.Truncated {
			noteColor.Fprintln(out, "(log truncated)")
		}
		return
	}

	var lines []string
	if src.Text() != "" {
		lines = strings.Split(src.Text(), "\n")
	}
	label := "program"
	if src.Stage() != 0 {
		label = src.Stage().String()
	}
	for _, m := range markers {
		sevColor := errColor
		if m.Severity == "warning" {
			sevColor = warnColor
		}
		loc := fmt.Sprintf("%d", m.Line)
		if m.Column > 0 {
			loc = fmt.Sprintf("%d:%d", m.Line, m.Column)
		}
		fmt.Fprintf(out, "%s:%s: %s: %s\n", label, loc, sevColor.Sprint(m.Severity), m.Message)
		if m.Line < 1 || m.Line > len(lines) {
			continue
		}
		text := strings.ReplaceAll(lines[m.Line-1], "\t", "    ")
		noteColor.Fprintf(out, "%5d | ", m.Line)
		fmt.Fprintln(out, text)
		if m.Column > 0 {
			noteColor.Fprintf(out, "      | ")
			fmt.Fprintln(out, sevColor.Sprint(strings.Repeat(" ", m.Column-1)+"^"))
		}
	}
	if err.Truncated {
		noteColor.Fprintln(out, "(log truncated)")
	}
}
