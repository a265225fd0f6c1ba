package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GLDriver implements Driver on top of OpenGL 3.3 core.
//
// gl.Init must have been called and a context must be current on the calling
// thread.
type GLDriver struct{}

var _ Driver = GLDriver{}

func (stage Stage) glEnum() (uint32, error) {
	switch stage {
	case StageVertex:
		return gl.VERTEX_SHADER, nil
	case StageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid pipeline stage: %v", stage)
}

func (GLDriver) CompileShader(stage Stage, text string) (ShaderHandle, bool, string) {
	glStage, err := stage.glEnum()
	if err != nil {
		return 0, false, err.Error()
	}

	shader := gl.CreateShader(glStage)
	csources, free := gl.Strs(text + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return ShaderHandle(shader), false, log
	}
	return ShaderHandle(shader), true, ""
}

func (GLDriver) LinkProgram(vertex, fragment ShaderHandle) (ProgramHandle, bool, string) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var log string
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log = strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	}

	// Stage objects are only flagged for deletion while attached.
	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))
	return ProgramHandle(program), status != gl.FALSE, log
}

func (GLDriver) DeleteShader(sh ShaderHandle) {
	gl.DeleteShader(uint32(sh))
}

func (GLDriver) DeleteProgram(p ProgramHandle) {
	gl.DeleteProgram(uint32(p))
}

// Use makes the program part of the current rendering state.
func (p *Program) Use() {
	gl.UseProgram(uint32(p.handle))
}
