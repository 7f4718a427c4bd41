// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// RippleVertexShader transforms grid vertices by the final matrix.
//
//go:embed ripple.vert
var RippleVertexShader string

// RippleFragmentShader colors fragments by normalized height.
//
//go:embed ripple.frag
var RippleFragmentShader string
