package catalog

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cartomix/aurora/internal/model"
)

// Program is a compiled+linked GLSL fragment program bound to the shared
// full-screen-quad vertex shader.
type Program struct {
	handle uint32
}

// Registry compiles and caches one Program per generator/effect kind for a
// single worker process's GL context. Never share a Registry across
// processes or contexts — each worker builds its own, per spec.md §4.4/§9
// ("compile each kind's program once on first use per worker").
type Registry struct {
	vertexShader uint32
	generators   map[model.GeneratorKind]*Program
	effects      map[model.EffectKind]*Program
	passthrough  *Program
	blends       map[model.BlendMode]*Program
}

// NewRegistry compiles the shared vertex shader. Must be called with a
// current GL context on the calling goroutine/OS thread.
func NewRegistry() (*Registry, error) {
	vs, err := compileShader(vertexShaderSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, &model.CompileError{Kind: "vertex", Log: err.Error(), Err: err}
	}
	return &Registry{
		vertexShader: vs,
		generators:   make(map[model.GeneratorKind]*Program),
		effects:      make(map[model.EffectKind]*Program),
		blends:       make(map[model.BlendMode]*Program),
	}, nil
}

// Generator returns the compiled program for kind, compiling and caching it
// on first use.
func (r *Registry) Generator(kind model.GeneratorKind) (*Program, error) {
	if p, ok := r.generators[kind]; ok {
		return p, nil
	}
	src, ok := generatorShaders[string(kind)]
	if !ok {
		src = generatorShaders[string(model.GeneratorSolidColor)]
	}
	p, err := r.link(src, string(kind))
	if err != nil {
		return nil, err
	}
	r.generators[kind] = p
	return p, nil
}

// Passthrough returns the single-texture blit program used by the
// compositor to draw a scratch texture into an accumulator/ping-pong
// target under GL blend state, compiling it once on first use.
func (r *Registry) Passthrough() (*Program, error) {
	if r.passthrough != nil {
		return r.passthrough, nil
	}
	p, err := r.link(PassthroughFragmentSrc, "passthrough")
	if err != nil {
		return nil, err
	}
	r.passthrough = p
	return p, nil
}

// Blend returns the compiled non-separable blend program for mode (Screen
// or Multiply — Normal/Add stay fixed-function glBlendFunc in the
// compositor), compiling and caching it on first use.
func (r *Registry) Blend(mode model.BlendMode) (*Program, error) {
	if p, ok := r.blends[mode]; ok {
		return p, nil
	}
	var src string
	switch mode {
	case model.BlendScreen:
		src = BlendScreenFragmentSrc
	case model.BlendMultiply:
		src = BlendMultiplyFragmentSrc
	default:
		return nil, fmt.Errorf("no blend program for mode %q", mode)
	}
	p, err := r.link(src, "blend-"+string(mode))
	if err != nil {
		return nil, err
	}
	r.blends[mode] = p
	return p, nil
}

// Effect returns the compiled program for kind, compiling and caching it on
// first use.
func (r *Registry) Effect(kind model.EffectKind) (*Program, error) {
	if p, ok := r.effects[kind]; ok {
		return p, nil
	}
	src, ok := effectShaders[string(kind)]
	if !ok {
		src = effectShaders[string(model.EffectColorGrade)]
	}
	p, err := r.link(src, string(kind))
	if err != nil {
		return nil, err
	}
	r.effects[kind] = p
	return p, nil
}

func (r *Registry) link(fragSrc, kindName string) (*Program, error) {
	fs, err := compileShader(fragSrc+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, &model.CompileError{Kind: kindName, Log: err.Error(), Err: err}
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, r.vertexShader)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		return nil, &model.CompileError{Kind: kindName, Log: log}
	}

	gl.DeleteShader(fs)
	return &Program{handle: program}, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, &model.CompileError{Log: log}
	}
	return shader, nil
}

// Use activates the program for subsequent uniform/draw calls.
func (p *Program) Use() { gl.UseProgram(p.handle) }

// Uniform1f sets a named float uniform, silently no-oping if the uniform
// does not exist in this program (unknown param names are ignored per
// spec.md §3).
func (p *Program) Uniform1f(name string, value float32) {
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	if loc >= 0 {
		gl.Uniform1f(loc, value)
	}
}

// Uniform2f sets a named vec2 uniform.
func (p *Program) Uniform2f(name string, x, y float32) {
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	if loc >= 0 {
		gl.Uniform2f(loc, x, y)
	}
}

// Uniform1i sets a named sampler/int uniform.
func (p *Program) Uniform1i(name string, value int32) {
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	if loc >= 0 {
		gl.Uniform1i(loc, value)
	}
}

// Delete releases the program's GL handle.
func (p *Program) Delete() {
	gl.DeleteProgram(p.handle)
}
