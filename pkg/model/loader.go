// Package model loads JSON box models and turns them into meshes whose
// material textures live in a shared texture array.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

// ErrParentCycle is returned when a model is its own ancestor.
var ErrParentCycle = errors.New("model parent cycle")

const maxRefDepth = 10

type Loader struct {
	modelsDir  string
	modelCache map[string]*Model
	rawCache   map[string]*Model // parent chain merged, references unresolved
	loading    map[string]bool
}

func NewLoader(modelsDir string) *Loader {
	return &Loader{
		modelsDir:  modelsDir,
		modelCache: make(map[string]*Model),
		rawCache:   make(map[string]*Model),
		loading:    make(map[string]bool),
	}
}

// LoadModel reads <modelsDir>/<name>.json, merges its parent chain and
// resolves every #reference in its materials against the merged textures.
func (l *Loader) LoadModel(name string) (*Model, error) {
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}

	raw, err := l.loadRaw(name)
	if err != nil {
		return nil, err
	}

	model := &Model{
		Parent:   raw.Parent,
		Textures: maps.Clone(raw.Textures),
		Material: raw.Material,
		Elements: copyElements(raw.Elements),
	}
	resolveMaterials(model)
	l.modelCache[name] = model
	return model, nil
}

// loadRaw merges the parent chain without resolving references, so a child's
// texture keys still apply to materials it inherits.
func (l *Loader) loadRaw(name string) (*Model, error) {
	if model, ok := l.rawCache[name]; ok {
		return model, nil
	}
	if l.loading[name] {
		return nil, fmt.Errorf("%w: %s", ErrParentCycle, name)
	}
	l.loading[name] = true
	defer delete(l.loading, name)

	path := filepath.Join(l.modelsDir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("could not unmarshal model json: %w", err)
	}
	if model.Textures == nil {
		model.Textures = make(map[string]string)
	}

	if model.Parent != "" {
		parent, err := l.loadRaw(model.Parent)
		if err != nil {
			return nil, fmt.Errorf("could not load parent model '%s': %w", model.Parent, err)
		}
		inherit(&model, parent)
	}

	l.rawCache[name] = &model
	return &model, nil
}

// inherit fills what the child leaves unset. Elements are copied so that
// nothing written to the child reaches the cached parent.
func inherit(child, parent *Model) {
	if len(child.Elements) == 0 {
		child.Elements = copyElements(parent.Elements)
	}
	if child.Material.Diffuse == nil {
		child.Material.Diffuse = parent.Material.Diffuse
	}
	if child.Material.Specular == nil {
		child.Material.Specular = parent.Material.Specular
	}
	if child.Material.Emission == nil {
		child.Material.Emission = parent.Material.Emission
	}
	for key, val := range parent.Textures {
		if _, ok := child.Textures[key]; !ok {
			child.Textures[key] = val
		}
	}
}

func copyElements(src []Element) []Element {
	if src == nil {
		return nil
	}
	dst := make([]Element, len(src))
	for i, e := range src {
		dst[i] = e
		if e.Material != nil {
			m := *e.Material
			dst[i].Material = &m
		}
		if e.Faces != nil {
			dst[i].Faces = make(map[string]Face, len(e.Faces))
			for k, f := range e.Faces {
				dst[i].Faces[k] = f
			}
		}
	}
	return dst
}

func resolveMaterials(m *Model) {
	m.Material = resolveMaterial(m.Material, m)
	for i := range m.Elements {
		if m.Elements[i].Material != nil {
			resolved := resolveMaterial(*m.Elements[i].Material, m)
			m.Elements[i].Material = &resolved
		}
	}
}

// resolveMaterial returns fresh slices; inherited slices are shared with the parent.
func resolveMaterial(mat Material, m *Model) Material {
	resolve := func(refs []string) []string {
		if refs == nil {
			return nil
		}
		out := make([]string, len(refs))
		for i, ref := range refs {
			out[i] = ResolveTexture(ref, m)
		}
		return out
	}
	return Material{
		Diffuse:  resolve(mat.Diffuse),
		Specular: resolve(mat.Specular),
		Emission: resolve(mat.Emission),
	}
}

// ResolveTexture follows #key references through m.Textures. An unknown
// key is returned as is.
func ResolveTexture(textureName string, m *Model) string {
	for i := 0; i < maxRefDepth && strings.HasPrefix(textureName, "#"); i++ {
		key := strings.TrimPrefix(textureName, "#")
		resolved, ok := m.Textures[key]
		if !ok {
			break
		}
		textureName = resolved
	}
	return textureName
}
