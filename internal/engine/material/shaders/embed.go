// Package shaders embeds the GLSL sources for the built-in materials.
package shaders

import _ "embed"

// ObjectVertexShader is the vertex shader for the default lit material.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader is the fragment shader for the default lit material.
//
//go:embed object.frag
var ObjectFragmentShader string

// NormalsVertexShader is the vertex shader for normal visualization.
//
//go:embed normals.vert
var NormalsVertexShader string

// NormalsFragmentShader is the fragment shader for normal visualization.
//
//go:embed normals.frag
var NormalsFragmentShader string

// UVVertexShader is the vertex shader for texture coordinate visualization.
//
//go:embed uv.vert
var UVVertexShader string

// UVFragmentShader is the fragment shader for texture coordinate visualization.
//
//go:embed uv.frag
var UVFragmentShader string

// SkyboxVertexShader is the vertex shader for cubemap sky rendering.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for cubemap sky rendering.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
