package shader

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLogLength is the number of bytes of a compiler or linker log that
// is retained in a BuildError unless overridden with WithMaxLogLength.
const DefaultMaxLogLength = 4096

var (
	// ErrInvalidSource is returned when a Source passed to Build is not usable
	// for the stage it is passed as. The driver is not invoked in this case.
	ErrInvalidSource = errors.New("invalid shader source")

	errNoDriver = errors.New("shader: builder has no driver")
)

type Option func(*Builder)

// WithMaxLogLength caps the length of diagnostic logs. A value <= 0 keeps
// logs whole.
func WithMaxLogLength(n int) Option {
	return func(b *Builder) {
		b.maxLogLength = n
	}
}

// Builder compiles a vertex and a fragment stage and links them into a
// program.
//
// A Builder holds no state between calls to Build; every call allocates and
// releases its own objects.
type Builder struct {
	driver       Driver
	maxLogLength int
}

func NewBuilder(driver Driver, opts ...Option) *Builder {
	b := &Builder{
		driver:       driver,
		maxLogLength: DefaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build compiles both stages and links them.
//
// Compilation stops at the first failure, which is returned as a *BuildError.
// No object allocated during a failed call is left behind. On success the
// stage objects are released and only the returned Program remains, owned by
// the caller.
func (b *Builder) Build(vertex, fragment Source) (*Program, error) {
	if b.driver == nil {
		return nil, errNoDriver
	}
	if err := vertex.validate(StageVertex); err != nil {
		return nil, err
	}
	if err := fragment.validate(StageFragment); err != nil {
		return nil, err
	}

	vs, err := b.compile(vertex, PhaseVertexCompile)
	if err != nil {
		return nil, err
	}
	fs, err := b.compile(fragment, PhaseFragmentCompile)
	if err != nil {
		b.driver.DeleteShader(vs)
		return nil, err
	}

	program, ok, log := b.driver.LinkProgram(vs, fs)
	b.driver.DeleteShader(vs)
	b.driver.DeleteShader(fs)
	if !ok {
		if program != 0 {
			b.driver.DeleteProgram(program)
		}
		return nil, b.failure(PhaseLink, log)
	}
	if program == 0 {
		return nil, errors.New("shader: driver reported a successful link without a program object")
	}
	return &Program{handle: program, driver: b.driver}, nil
}

func (b *Builder) compile(src Source, phase Phase) (ShaderHandle, error) {
	sh, ok, log := b.driver.CompileShader(src.Stage(), src.Text())
	if !ok {
		if sh != 0 {
			b.driver.DeleteShader(sh)
		}
		return 0, b.failure(phase, log)
	}
	if sh == 0 {
		return 0, fmt.Errorf("shader: driver compiled the %s stage without a shader object", src.Stage())
	}
	return sh, nil
}

func (b *Builder) failure(phase Phase, log string) *BuildError {
	log, truncated := truncateLog(log, b.maxLogLength)
	return &BuildError{
		Phase:     phase,
		Log:       log,
		Truncated: truncated,
	}
}

// truncateLog strips the NUL padding graphics APIs leave in log buffers and
// caps the result at limit bytes without splitting a UTF-8 sequence.
func truncateLog(log string, limit int) (string, bool) {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	log = strings.TrimRight(log, "\r\n")
	if limit <= 0 || len(log) <= limit {
		return log, false
	}
	n := limit
	for n > 0 && !utf8.RuneStart(log[n]) {
		n--
	}
	return log[:n], true
}

// Program is a linked program object. The caller owns it and must Release it
// once it is no longer used, on the thread that owns the rendering context.
type Program struct {
	handle ProgramHandle
	driver Driver
}

func (p *Program) Handle() ProgramHandle {
	return p.handle
}

// Release deletes the program object. Subsequent calls are no-ops.
func (p *Program) Release() {
	if p.handle == 0 {
		return
	}
	p.driver.DeleteProgram(p.handle)
	p.handle = 0
}
