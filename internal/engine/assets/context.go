// Package assets provides the named, reference-counted caches for
// meshes, textures, and materials. The caches live in an explicitly
// owned Context rather than process-wide state, making teardown order
// a property of the code instead of destructor luck.
package assets

import (
	"fmt"
	"sync"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/texture"
)

// releaser is implemented by materials owning GL programs.
type releaser interface {
	Release()
}

type meshEntry struct {
	mesh *mesh.Mesh
	refs int
}

type textureEntry struct {
	tex  *texture.Texture
	refs int
}

// Context owns every shared rendering resource. It must be closed while
// the GL context is still current; Close releases resources in a fixed
// order: meshes, then textures, then materials.
type Context struct {
	backend gpu.Backend

	mu        sync.Mutex
	meshes    map[string]*meshEntry
	textures  map[string]*textureEntry
	materials map[string]scene.Material
	closed    bool
}

// NewContext creates an empty resource context over the given buffer
// backend.
func NewContext(backend gpu.Backend) *Context {
	return &Context{
		backend:   backend,
		meshes:    make(map[string]*meshEntry),
		textures:  make(map[string]*textureEntry),
		materials: make(map[string]scene.Material),
	}
}

// RegisterMesh adds a mesh under a logical name with one reference held
// by the registrant. Registering a taken name fails, so partially built
// resources never shadow live ones.
func (c *Context) RegisterMesh(name string, m *mesh.Mesh) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("assets: context closed")
	}
	if _, taken := c.meshes[name]; taken {
		return fmt.Errorf("assets: mesh %q already registered", name)
	}
	c.meshes[name] = &meshEntry{mesh: m, refs: 1}
	return nil
}

// Mesh returns the named mesh and takes a reference on it.
func (c *Context) Mesh(name string) (*mesh.Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.meshes[name]
	if !ok {
		return nil, false
	}
	e.refs++
	return e.mesh, true
}

// ReleaseMesh drops one reference; the last reference frees the device
// buffers and removes the entry.
func (c *Context) ReleaseMesh(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.meshes[name]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		e.mesh.Release(c.backend)
		delete(c.meshes, name)
	}
}

// RegisterTexture adds a texture under a logical name with one
// reference held by the registrant.
func (c *Context) RegisterTexture(name string, t *texture.Texture) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("assets: context closed")
	}
	if _, taken := c.textures[name]; taken {
		return fmt.Errorf("assets: texture %q already registered", name)
	}
	c.textures[name] = &textureEntry{tex: t, refs: 1}
	return nil
}

// Texture returns the named texture and takes a reference on it.
func (c *Context) Texture(name string) (*texture.Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.textures[name]
	if !ok {
		return nil, false
	}
	e.refs++
	return e.tex, true
}

// ReleaseTexture drops one reference; the last reference frees the GL
// texture and removes the entry.
func (c *Context) ReleaseTexture(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.textures[name]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		e.tex.Release()
		delete(c.textures, name)
	}
}

// RegisterMaterial adds a material under a logical name. Materials are
// not reference-counted; they live until the context closes.
func (c *Context) RegisterMaterial(name string, m scene.Material) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("assets: context closed")
	}
	if _, taken := c.materials[name]; taken {
		return fmt.Errorf("assets: material %q already registered", name)
	}
	c.materials[name] = m
	return nil
}

// Material returns the named material.
func (c *Context) Material(name string) (scene.Material, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.materials[name]
	return m, ok
}

// Close releases everything still cached, regardless of outstanding
// references, in mesh, texture, material order. Must run while the GL
// context is current.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true

	for name, e := range c.meshes {
		e.mesh.Release(c.backend)
		delete(c.meshes, name)
	}
	for name, e := range c.textures {
		e.tex.Release()
		delete(c.textures, name)
	}
	for name, m := range c.materials {
		if rel, ok := m.(releaser); ok {
			rel.Release()
		}
		delete(c.materials, name)
	}
}
