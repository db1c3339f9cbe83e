// Package shader provides OpenGL shader program compilation and the
// name-based uniform/attribute lookup materials are built on.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
)

// Program wraps a linked GL shader program.
//
// Uniform and attribute lookup is a stringly-typed contract resolved at link
// time: a name the shader does not declare (or that the compiler optimized
// away) yields ok=false, which callers treat as "legitimately absent", not
// as an error.
type Program struct {
	id uint32
}

// New compiles vertex and fragment sources and links them into a program.
// A compile or link failure is unrecoverable for the would-be material and
// carries the full driver diagnostic text.
func New(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id}, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes this program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the location of a named uniform.
// ok is false when the uniform does not exist or is inactive.
func (p *Program) Uniform(name string) (loc int32, ok bool) {
	loc = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	return loc, loc >= 0
}

// Attrib returns the location of a named vertex attribute.
// ok is false when the attribute does not exist or is inactive.
func (p *Program) Attrib(name string) (loc uint32, ok bool) {
	l := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
	if l < 0 {
		return 0, false
	}
	return uint32(l), true
}

// MustUniform returns the location of a uniform the shader is known to
// declare. Panics when absent, which indicates a broken shader pair.
func (p *Program) MustUniform(name string) int32 {
	loc, ok := p.Uniform(name)
	if !ok {
		panic(fmt.Sprintf("shader: uniform %q not found in program %d", name, p.id))
	}
	return loc
}

// MustAttrib returns the location of an attribute the shader is known to
// declare. Panics when absent.
func (p *Program) MustAttrib(name string) uint32 {
	loc, ok := p.Attrib(name)
	if !ok {
		panic(fmt.Sprintf("shader: attribute %q not found in program %d", name, p.id))
	}
	return loc
}

// Release deletes the program. Must be called while the GL context is alive.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. Returns the program ID or an error carrying the info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	logger.Debug("shader program linked", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}
