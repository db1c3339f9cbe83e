// Package shaders embeds the GLSL sources for post-processing passes.
package shaders

import _ "embed"

// ScreenVertexShader draws the full-screen triangle pair.
//
//go:embed screen.vert
var ScreenVertexShader string

// GrayscaleFragmentShader converts the scene to luminance.
//
//go:embed grayscale.frag
var GrayscaleFragmentShader string

// SobelFragmentShader draws luminance edges.
//
//go:embed sobel.frag
var SobelFragmentShader string
