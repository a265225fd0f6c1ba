package shader

// ShaderHandle names a compiled shader stage object. The zero value means no
// object was allocated.
type ShaderHandle uint32

// ProgramHandle names a program object. The zero value means no object was
// allocated.
type ProgramHandle uint32

// Driver provides the graphics API primitives a Builder is composed of. All
// methods are called on the thread that owns the current rendering context.
type Driver interface {
	// CompileShader creates a shader object for the stage and compiles text
	// into it. The handle is returned even when compilation fails so the
	// caller can release it. The log is the compiler's info log.
	CompileShader(stage Stage, text string) (handle ShaderHandle, ok bool, log string)

	// LinkProgram creates a program object, attaches both stages and links
	// it. The program handle is returned even when linking fails.
	LinkProgram(vertex, fragment ShaderHandle) (handle ProgramHandle, ok bool, log string)

	DeleteShader(ShaderHandle)
	DeleteProgram(ProgramHandle)
}
