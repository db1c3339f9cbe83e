// Package shaders embeds the GLSL sources for the immediate-mode
// line and point batches.
package shaders

import _ "embed"

// FlatVertexShader transforms per-vertex colored primitives.
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader passes the vertex color through.
//
//go:embed flat.frag
var FlatFragmentShader string
