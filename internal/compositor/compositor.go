package compositor

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cartomix/aurora/internal/catalog"
	"github.com/cartomix/aurora/internal/model"
	"github.com/cartomix/aurora/internal/param"
)

// quadVertices is the shared full-screen NDC quad every fragment program
// renders over (two triangles).
var quadVertices = []float32{
	-1, -1, 1, -1, -1, 1,
	-1, 1, 1, -1, 1, 1,
}

type fbo struct {
	fb, tex uint32
}

// FootageSource resolves a Footage generator node to a decoded-frame
// texture at a given time, supplied by the caller — the compositor itself
// has no media-decode dependency. No implementation exists in this
// repository: cmd/frameworker passes nil, and with a nil source the
// Footage texture bind is skipped.
type FootageSource interface {
	FrameTexture(node *model.Node, atTimeSeconds float64) (texture uint32, err error)
}

// Compositor owns a worker's GL resources: the full-screen quad, a scratch
// FBO for rendering one generator/effect pass, an accumulator FBO, and two
// ping-pong FBOs for chaining effects. Built once per worker process and
// reused for every frame that worker renders, per spec.md §3/§4.5.
type Compositor struct {
	width, height int
	registry      *catalog.Registry
	footage       FootageSource

	vao uint32

	scratch      fbo
	accumulator  fbo
	pingA        fbo
	pingB        fbo
	blendScratch fbo

	// feedback holds the Feedback effect's prior-frame output, persisted
	// across RenderFrame calls on this Compositor (one worker's frame
	// range) and bound as prevTex before each Feedback pass, per spec.md
	// §4.4's "samples prior texture ... multiplies by decay".
	feedback fbo
}

// New builds a Compositor at the given frame resolution. Requires a current
// GL context on the calling thread.
func New(width, height int, registry *catalog.Registry, footage FootageSource) (*Compositor, error) {
	c := &Compositor{width: width, height: height, registry: registry, footage: footage}

	var vbo uint32
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	var err error
	if c.scratch, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "scratch fbo", Err: err}
	}
	if c.accumulator, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "accumulator fbo", Err: err}
	}
	if c.pingA, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "ping fbo a", Err: err}
	}
	if c.pingB, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "ping fbo b", Err: err}
	}
	if c.blendScratch, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "blend scratch fbo", Err: err}
	}
	if c.feedback, err = newFBO(width, height); err != nil {
		return nil, &model.RenderError{Stage: "feedback fbo", Err: err}
	}
	// Seed with transparent black so the first Feedback pass a worker
	// renders decays toward nothing rather than sampling undefined texture
	// contents.
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.feedback.fb)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	return c, nil
}

func newFBO(width, height int) (fbo, error) {
	var f fbo
	gl.GenFramebuffers(1, &f.fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fb)

	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex, 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fbo{}, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return f, nil
}

// RenderFrame implements spec.md §4.5 steps 2-5 for one RenderContext,
// returning the tightly packed RGBA8 pixel buffer (GL row order, caller
// flips Y via WriteFramePNG).
func (c *Compositor) RenderFrame(timeline *model.VisualTimeline, feats *model.AudioFeatures, evaluator *param.Evaluator, timeSeconds float64) ([]byte, error) {
	gl.Viewport(0, 0, int32(c.width), int32(c.height))

	// Step 2: clear the accumulator.
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.accumulator.fb)
	bg := param.Evaluate(&timeline.BackgroundColor, timeSeconds, timeline.DurationSeconds, feats, audioFrameIndex(timeSeconds, feats))
	gl.ClearColor(bg, bg, bg, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Step 3: generators, in timeline order.
	for i := range timeline.Nodes {
		n := &timeline.Nodes[i]
		if n.Kind != model.NodeGenerator {
			continue
		}
		opacity := EffectiveOpacity(n, timeSeconds)
		if opacity <= 0 {
			continue
		}
		if err := c.renderGenerator(n, feats, evaluator, timeSeconds); err != nil {
			return nil, err
		}
		c.compositeOnto(c.accumulator, c.scratch.tex, n.BlendMode, opacity)
	}

	// Step 4: effects, ping-pong.
	current := c.accumulator
	next := c.pingA
	other := c.pingB
	for i := range timeline.Nodes {
		n := &timeline.Nodes[i]
		if n.Kind != model.NodeEffect {
			continue
		}
		opacity := EffectiveOpacity(n, timeSeconds)
		if opacity <= 0 {
			continue
		}
		if err := c.renderEffect(n, current.tex, feats, evaluator, timeSeconds, next); err != nil {
			return nil, err
		}
		if opacity < 1 {
			c.compositeOnto(next, current.tex, model.BlendNormal, 1-opacity)
		}
		if n.EffectKind == model.EffectFeedback {
			c.updateFeedbackTexture(next.tex)
		}
		current, next, other = next, other, current
	}

	// Step 5: read pixels.
	gl.BindFramebuffer(gl.FRAMEBUFFER, current.fb)
	pix := make([]byte, c.width*c.height*4)
	gl.ReadPixels(0, 0, int32(c.width), int32(c.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	return pix, nil
}

func audioFrameIndex(t float64, feats *model.AudioFeatures) int {
	n := feats.Len()
	if n == 0 {
		return 0
	}
	idx := int(t*float64(model.FrameRate) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func (c *Compositor) renderGenerator(n *model.Node, feats *model.AudioFeatures, evaluator *param.Evaluator, t float64) error {
	prog, err := c.registry.Generator(n.GeneratorKind)
	if err != nil {
		return err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, c.scratch.fb)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	prog.Use()
	prog.Uniform1f("u_time", float32(t))
	prog.Uniform2f("u_resolution", float32(c.width), float32(c.height))

	for _, name := range catalog.GeneratorParamNames(n.GeneratorKind) {
		cp, present := n.Params[name]
		var evaluated float32
		if present {
			evaluated = evaluator.Eval(n.ID, name, &cp, t, 0, feats, audioFrameIndex(t, feats))
		}
		prog.Uniform1f(name, catalog.ResolveGeneratorParam(n.GeneratorKind, name, evaluated, present))
	}

	if n.GeneratorKind == model.GeneratorFootage && c.footage != nil {
		tex, err := c.footage.FrameTexture(n, t)
		if err == nil {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex)
			prog.Uniform1i("footageTex", 0)
		}
	}

	c.drawQuad()
	return nil
}

func (c *Compositor) renderEffect(n *model.Node, inputTex uint32, feats *model.AudioFeatures, evaluator *param.Evaluator, t float64, target fbo) error {
	prog, err := c.registry.Effect(n.EffectKind)
	if err != nil {
		return err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, target.fb)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	prog.Use()
	prog.Uniform1f("u_time", float32(t))
	prog.Uniform2f("u_resolution", float32(c.width), float32(c.height))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, inputTex)
	prog.Uniform1i("inputTex", 0)

	if n.EffectKind == model.EffectFeedback {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, c.feedback.tex)
		prog.Uniform1i("prevTex", 1)
	}

	for _, name := range catalog.EffectParamNames(n.EffectKind) {
		cp, present := n.Params[name]
		var evaluated float32
		if present {
			evaluated = evaluator.Eval(n.ID, name, &cp, t, 0, feats, audioFrameIndex(t, feats))
		}
		prog.Uniform1f(name, catalog.ResolveEffectParam(n.EffectKind, name, evaluated, present))
	}

	c.drawQuad()
	return nil
}

// compositeOnto draws srcTex into dst's framebuffer per spec.md §4.5 step 3.
// Normal and Add are separable (the result only scales src by opacity and
// adds/lerps it against whatever's already in dst) so they run as plain
// glBlendFunc state over a passthrough blit, scaled by opacity via
// glBlendColor. Screen and Multiply mix src and dst together non-linearly
// and are handled by compositeNonSeparable instead.
func (c *Compositor) compositeOnto(dst fbo, srcTex uint32, mode model.BlendMode, opacity float32) {
	if mode == model.BlendScreen || mode == model.BlendMultiply {
		c.compositeNonSeparable(dst, srcTex, mode, opacity)
		return
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, dst.fb)
	gl.Enable(gl.BLEND)
	gl.BlendColor(0, 0, 0, opacity)

	switch mode {
	case model.BlendAdd:
		gl.BlendFunc(gl.CONSTANT_ALPHA, gl.ONE)
	case model.BlendNormal:
		fallthrough
	default:
		gl.BlendFunc(gl.CONSTANT_ALPHA, gl.ONE_MINUS_CONSTANT_ALPHA)
	}

	prog, err := c.registry.Passthrough()
	if err != nil {
		gl.Disable(gl.BLEND)
		return
	}
	prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, srcTex)
	prog.Uniform1i("tex", 0)
	c.drawQuad()
	gl.Disable(gl.BLEND)
}

// compositeNonSeparable renders mode's blend algebra (matching Blend() in
// blend.go) into c.blendScratch — sampling dst's current content and srcTex
// as two input textures, since GL can't read and write the same texture in
// one draw call — then blits the result back onto dst with blending
// disabled (the shader already applied opacity via mix()).
func (c *Compositor) compositeNonSeparable(dst fbo, srcTex uint32, mode model.BlendMode, opacity float32) {
	prog, err := c.registry.Blend(mode)
	if err != nil {
		return
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, c.blendScratch.fb)
	gl.Disable(gl.BLEND)
	prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, dst.tex)
	prog.Uniform1i("dstTex", 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, srcTex)
	prog.Uniform1i("srcTex", 1)
	prog.Uniform1f("opacity", opacity)
	c.drawQuad()

	passthrough, err := c.registry.Passthrough()
	if err != nil {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, dst.fb)
	passthrough.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.blendScratch.tex)
	passthrough.Uniform1i("tex", 0)
	c.drawQuad()
}

// updateFeedbackTexture copies a Feedback pass's output into the persistent
// feedback fbo so the next frame's Feedback pass samples this frame's
// result as prevTex, per spec.md §4.4's cross-frame decay behavior.
func (c *Compositor) updateFeedbackTexture(outputTex uint32) {
	prog, err := c.registry.Passthrough()
	if err != nil {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.feedback.fb)
	gl.Disable(gl.BLEND)
	prog.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, outputTex)
	prog.Uniform1i("tex", 0)
	c.drawQuad()
}

func (c *Compositor) drawQuad() {
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Close releases every GL resource the Compositor owns.
func (c *Compositor) Close() {
	for _, f := range []fbo{c.scratch, c.accumulator, c.pingA, c.pingB, c.blendScratch, c.feedback} {
		gl.DeleteFramebuffers(1, &f.fb)
		gl.DeleteTextures(1, &f.tex)
	}
	gl.DeleteVertexArrays(1, &c.vao)
}
