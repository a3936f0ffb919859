// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MaxTextureSlots is the length of the subTexRes uniform array in scene.frag.
const MaxTextureSlots = 64

// SceneVertexShader transforms lit, textured meshes.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader samples the texture array and applies the fixed lighting.
//
//go:embed scene.frag
var SceneFragmentShader string

// LightVertexShader draws the point light marker.
//
//go:embed light.vert
var LightVertexShader string

// LightFragmentShader fills the marker with the light colour.
//
//go:embed light.frag
var LightFragmentShader string
