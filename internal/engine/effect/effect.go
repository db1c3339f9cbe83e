// Package effect implements full-screen post-processing passes that
// sample an offscreen scene texture and write the processed image to
// the current render target.
package effect

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/effect/shaders"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/shader"
)

// Effect is one post-processing pass.
type Effect interface {
	// Apply draws a full-screen quad sampling the scene color texture
	// into the currently bound target.
	Apply(colorTexture uint32, width, height int32)
	Release()
}

// screenPass is the machinery shared by all effects: a clip-space quad
// and a program built from the common vertex shader.
type screenPass struct {
	prog     *shader.Program
	quad     *gpu.Vector[float32]
	position uint32
}

func newScreenPass(fragmentSrc string) (*screenPass, error) {
	prog, err := shader.New(shaders.ScreenVertexShader, fragmentSrc)
	if err != nil {
		return nil, err
	}
	quad := gpu.NewVector([]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}, gpu.ArrayBuffer, gpu.StaticDraw)

	return &screenPass{
		prog:     prog,
		quad:     quad,
		position: prog.MustAttrib("position"),
	}, nil
}

func (p *screenPass) draw(colorTexture uint32, before func(prog *shader.Program)) {
	p.prog.Use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, colorTexture)
	if loc, ok := p.prog.Uniform("scene"); ok {
		gl.Uniform1i(loc, 0)
	}
	if before != nil {
		before(p.prog)
	}

	p.quad.Bind(gpu.GL)
	gl.VertexAttribPointer(p.position, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(p.position)

	// The quad covers everything; depth testing would only interfere.
	gl.Disable(gl.DEPTH_TEST)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Enable(gl.DEPTH_TEST)

	gl.DisableVertexAttribArray(p.position)
}

func (p *screenPass) release() {
	p.quad.Release(gpu.GL)
	p.prog.Release()
}

// Grayscale collapses the scene to luminance.
type Grayscale struct {
	pass *screenPass
}

// NewGrayscale compiles the grayscale pass.
func NewGrayscale() (*Grayscale, error) {
	pass, err := newScreenPass(shaders.GrayscaleFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Grayscale{pass: pass}, nil
}

// Apply implements Effect.
func (e *Grayscale) Apply(colorTexture uint32, _, _ int32) {
	e.pass.draw(colorTexture, nil)
}

// Release frees the pass resources.
func (e *Grayscale) Release() { e.pass.release() }

// Sobel draws luminance edges with a 3x3 Sobel kernel.
type Sobel struct {
	pass *screenPass
}

// NewSobel compiles the edge detection pass.
func NewSobel() (*Sobel, error) {
	pass, err := newScreenPass(shaders.SobelFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Sobel{pass: pass}, nil
}

// Apply implements Effect.
func (e *Sobel) Apply(colorTexture uint32, width, height int32) {
	e.pass.draw(colorTexture, func(prog *shader.Program) {
		if loc, ok := prog.Uniform("texel"); ok {
			gl.Uniform2f(loc, 1/float32(width), 1/float32(height))
		}
	})
}

// Release frees the pass resources.
func (e *Sobel) Release() { e.pass.release() }
