// Package catalog holds the fragment programs for every generator/effect
// kind in spec.md §4.4, plus the registry that compiles and caches them per
// worker process. Grounded on polyfloyd-shady and richinsley-goshadertoy,
// both of which render audio-reactive GLSL fragment programs over a
// full-screen quad via go-gl/gl + go-gl/glfw.
package catalog

// vertexShaderSrc is the shared full-screen-quad vertex shader every
// generator and effect program uses; only the fragment stage varies.
const vertexShaderSrc = `
#version 410 core
layout (location = 0) in vec2 aPos;
out vec2 uv;
void main() {
	uv = aPos * 0.5 + 0.5;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentHeader = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform float u_time;
uniform vec2 u_resolution;
`

// PassthroughFragmentSrc samples a single texture unmodified; used by the
// compositor to blit a generator/effect's scratch texture into an
// accumulator or ping-pong target under GL blend state, separately from
// every named generator/effect kind below.
const PassthroughFragmentSrc = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, uv);
}
` + "\x00"

// blendFragmentHeader computes the non-separable Screen/Multiply blend
// algebra from spec.md §4.5 step 3, which plain glBlendFunc cannot express
// since both modes mix src and dst values together rather than just scaling
// src. compositeOnto renders one of these instead of the passthrough blit
// for those two modes, sampling the destination accumulator as a texture.
const blendFragmentHeader = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D dstTex;
uniform sampler2D srcTex;
uniform float opacity;
`

// BlendScreenFragmentSrc implements dst+src-dst*src (1-(1-a)(1-b)) per channel.
const BlendScreenFragmentSrc = blendFragmentHeader + `
void main() {
	vec3 d = texture(dstTex, uv).rgb;
	vec3 s = texture(srcTex, uv).rgb;
	vec3 screened = vec3(1.0) - (vec3(1.0) - d) * (vec3(1.0) - s);
	fragColor = vec4(mix(d, screened, opacity), 1.0);
}
` + "\x00"

// BlendMultiplyFragmentSrc implements dst*src per channel.
const BlendMultiplyFragmentSrc = blendFragmentHeader + `
void main() {
	vec3 d = texture(dstTex, uv).rgb;
	vec3 s = texture(srcTex, uv).rgb;
	vec3 multiplied = d * s;
	fragColor = vec4(mix(d, multiplied, opacity), 1.0);
}
` + "\x00"

const fbmHelpers = `
float hash21(vec2 p) {
	p = fract(p * vec2(123.34, 456.21));
	p += dot(p, p + 45.32);
	return fract(p.x * p.y);
}
float noise(vec2 p) {
	vec2 i = floor(p), f = fract(p);
	float a = hash21(i), b = hash21(i + vec2(1.0, 0.0));
	float c = hash21(i + vec2(0.0, 1.0)), d = hash21(i + vec2(1.0, 1.0));
	vec2 u = f * f * (3.0 - 2.0 * f);
	return mix(a, b, u.x) + (c - a) * u.y * (1.0 - u.x) + (d - b) * u.x * u.y;
}
float fbm(vec2 p) {
	float sum = 0.0, amp = 0.5;
	for (int i = 0; i < 6; i++) {
		sum += amp * noise(p);
		p *= 2.0;
		amp *= 0.5;
	}
	return sum;
}
vec3 hsv2rgb(vec3 c) {
	vec4 K = vec4(1.0, 2.0/3.0, 1.0/3.0, 3.0);
	vec3 p = abs(fract(c.xxx + K.xyz) * 6.0 - K.www);
	return c.z * mix(K.xxx, clamp(p - K.xxx, 0.0, 1.0), c.y);
}
`

// generatorShaders maps each GeneratorKind to its fragment body. Each body
// reads its documented named uniforms directly (bound by the compositor
// through Program.Uniform1f) and writes fragColor.
var generatorShaders = map[string]string{
	"PerlinNoise": fragmentHeader + fbmHelpers + `
uniform float octaves;
uniform float scale;
void main() {
	vec2 p = uv * scale + vec2(u_time * 0.1, u_time * 0.05);
	float n = fbm(p) * 2.0 - 1.0;
	vec3 colorLo = vec3(0.05, 0.0, 0.15);
	vec3 colorMid = vec3(0.5, 0.2, 0.8);
	vec3 colorHi = vec3(1.0, 0.9, 0.6);
	float t = clamp((n + 1.0) * 0.5, 0.0, 1.0);
	vec3 col = t < 0.5 ? mix(colorLo, colorMid, t * 2.0) : mix(colorMid, colorHi, (t - 0.5) * 2.0);
	fragColor = vec4(col, 1.0);
}
`,
	"Particles": fragmentHeader + `
uniform float count;
uniform float size;
uniform float speed;
void main() {
	vec3 accum = vec3(0.0);
	for (int i = 0; i < 500; i++) {
		if (float(i) >= count) break;
		float fi = float(i);
		vec2 seed = vec2(fi * 12.9898, fi * 78.233);
		float hx = fract(sin(dot(seed, vec2(12.9898, 78.233))) * 43758.5453);
		float hy = fract(sin(dot(seed, vec2(39.346, 11.135))) * 53758.5453);
		vec2 pos = vec2(hx, hy) + 0.05 * vec2(sin(u_time * speed + fi), cos(u_time * speed * 0.7 + fi));
		float dist = distance(uv, fract(pos));
		float glow = size / (dist * 100.0 + 1.0);
		vec3 tint = hsv2rgb(vec3(fract(fi / count), 0.6, 1.0));
		accum += glow * tint;
	}
	fragColor = vec4(clamp(accum, 0.0, 1.0), 1.0);
}
`,
	"Fractal": fragmentHeader + `
uniform float iterations;
uniform float zoom;
void main() {
	vec2 center = vec2(sin(u_time * 0.2) * 0.5, cos(u_time * 0.15) * 0.5);
	vec2 c = (uv - 0.5) * 3.0 / zoom + center;
	vec2 z = vec2(0.0);
	float i;
	for (i = 0.0; i < 100.0; i++) {
		if (i >= iterations) break;
		z = vec2(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
		if (dot(z, z) > 4.0) break;
	}
	float t = i / iterations;
	fragColor = vec4(hsv2rgb(vec3(fract(t + u_time * 0.05), 0.8, t < 1.0 ? 1.0 : 0.0)), 1.0);
}
`,
	"Voronoi": fragmentHeader + `
uniform float points;
uniform float distance;
void main() {
	vec2 p = uv * 4.0;
	vec2 cellId = floor(p);
	float minDist = 10.0;
	vec3 cellColor = vec3(0.0);
	for (int y = -1; y <= 1; y++) {
		for (int x = -1; x <= 1; x++) {
			vec2 neighbor = vec2(float(x), float(y));
			vec2 seed = cellId + neighbor;
			float h = hash21(seed + floor(points));
			vec2 animated = 0.5 + 0.5 * sin(u_time + 6.2831 * vec2(h, fract(h * 17.0)));
			vec2 candidate = neighbor + animated;
			vec2 diff = candidate - fract(p) + cellId - cellId;
			diff = (cellId + neighbor + animated) - p;
			float d = mix(length(diff), abs(diff.x) + abs(diff.y), distance);
			if (d < minDist) {
				minDist = d;
				cellColor = hsv2rgb(vec3(h, 0.7, 1.0));
			}
		}
	}
	fragColor = vec4(cellColor * smoothstep(0.0, 0.6, minDist + 0.2), 1.0);
}
`,
	"FlowField": fragmentHeader + fbmHelpers + `
uniform float resolution;
uniform float strength;
void main() {
	vec2 p = uv;
	for (int i = 0; i < 20; i++) {
		float angle = fbm(p * resolution + u_time * 0.1) * 6.2831;
		p += vec2(cos(angle), sin(angle)) * 0.01 * strength;
	}
	fragColor = vec4(hsv2rgb(vec3(fract(length(p - uv) * 5.0), 0.6, 1.0)), 1.0);
}
`,
	"Geometric": fragmentHeader + `
uniform float sides;
uniform float rotation;
uniform float scale;
void main() {
	vec2 p = (uv - 0.5) * 2.0;
	float a = atan(p.y, p.x) + rotation;
	float r = length(p);
	float slice = 6.2831 / max(sides, 3.0);
	float wedge = mod(a, slice) - slice * 0.5;
	float edge = cos(wedge) * r;
	float shapeR = mix(0.1, 0.9, scale);
	float mask = smoothstep(shapeR, shapeR - 0.02, edge);
	fragColor = vec4(vec3(mask), 1.0);
}
`,
	"RadialWaves": fragmentHeader + `
uniform float frequency;
uniform float amplitude;
uniform float speed;
void main() {
	float dist = distance(uv, vec2(0.5));
	float wave = sin(dist * frequency - u_time * speed) * amplitude;
	float v = smoothstep(0.0, 1.0, wave * 0.5 + 0.5);
	fragColor = vec4(vec3(v), 1.0);
}
`,
	"SolidColor": fragmentHeader + `
uniform float color;
void main() {
	fragColor = vec4(vec3(color), 1.0);
}
`,
	"Footage": fragmentHeader + `
uniform sampler2D footageTex;
void main() {
	fragColor = texture(footageTex, vec2(uv.x, 1.0 - uv.y));
}
`,
}

// effectShaders maps each EffectKind to its fragment body. Every effect
// reads the previous pass via inputTex.
var effectShaders = map[string]string{
	"Blur": fragmentHeader + `
uniform sampler2D inputTex;
uniform float radius;
void main() {
	vec3 sum = vec3(0.0);
	float weightSum = 0.0;
	vec2 texel = radius / u_resolution;
	for (int x = -4; x <= 4; x++) {
		for (int y = -4; y <= 4; y++) {
			float w = exp(-float(x*x + y*y) / 8.0);
			sum += texture(inputTex, uv + vec2(float(x), float(y)) * texel).rgb * w;
			weightSum += w;
		}
	}
	fragColor = vec4(sum / max(weightSum, 1e-5), 1.0);
}
`,
	"Bloom": fragmentHeader + `
uniform sampler2D inputTex;
uniform float threshold;
uniform float intensity;
void main() {
	vec3 src = texture(inputTex, uv).rgb;
	vec3 bright = max(src - threshold, 0.0);
	vec3 bloom = vec3(0.0);
	vec2 texel = 2.0 / u_resolution;
	for (int x = -2; x <= 2; x++) {
		for (int y = -2; y <= 2; y++) {
			vec2 o = uv + vec2(float(x), float(y)) * texel;
			bloom += max(texture(inputTex, o).rgb - threshold, 0.0);
		}
	}
	bloom /= 25.0;
	fragColor = vec4(src + bloom * intensity, 1.0);
}
`,
	"Kaleidoscope": fragmentHeader + `
uniform sampler2D inputTex;
uniform float segments;
uniform float rotation;
void main() {
	vec2 p = uv - 0.5;
	float a = atan(p.y, p.x) + rotation;
	float r = length(p);
	float slice = 6.2831 / max(segments, 2.0);
	a = abs(mod(a, slice) - slice * 0.5);
	vec2 sampled = vec2(cos(a), sin(a)) * r + 0.5;
	fragColor = texture(inputTex, clamp(sampled, 0.0, 1.0));
}
`,
	"ColorGrade": fragmentHeader + `
uniform sampler2D inputTex;
uniform float hue;
uniform float saturation;
uniform float brightness;
vec3 rgb2hsv(vec3 c) {
	vec4 K = vec4(0.0, -1.0/3.0, 2.0/3.0, -1.0);
	vec4 p = mix(vec4(c.bg, K.wz), vec4(c.gb, K.xy), step(c.b, c.g));
	vec4 q = mix(vec4(p.xyw, c.r), vec4(c.r, p.yzx), step(p.x, c.r));
	float d = q.x - min(q.w, q.y);
	float e = 1.0e-10;
	return vec3(abs(q.z + (q.w - q.y) / (6.0 * d + e)), d / (q.x + e), q.x);
}
void main() {
	vec3 src = texture(inputTex, uv).rgb;
	vec3 hsv = rgb2hsv(src);
	hsv.x = fract(hsv.x + hue);
	hsv.y = clamp(hsv.y * saturation, 0.0, 1.0);
	hsv.z = clamp(hsv.z * brightness, 0.0, 1.0);
	fragColor = vec4(hsv2rgb(hsv), 1.0);
}
` + fbmHelpers,
	"Feedback": fragmentHeader + `
uniform sampler2D inputTex;
uniform sampler2D prevTex;
uniform float amount;
uniform float decay;
void main() {
	vec2 p = uv - 0.5;
	float a = 0.01;
	mat2 rot = mat2(cos(a), -sin(a), sin(a), cos(a));
	p = rot * p * 0.99 + 0.5;
	vec3 prev = texture(prevTex, clamp(p, 0.0, 1.0)).rgb * decay;
	vec3 cur = texture(inputTex, uv).rgb;
	fragColor = vec4(mix(cur, cur + prev, amount), 1.0);
}
`,
	"ChromaticAberration": fragmentHeader + `
uniform sampler2D inputTex;
uniform float amount;
void main() {
	vec2 dir = (uv - 0.5) * amount * 0.02;
	float r = texture(inputTex, uv + dir).r;
	float g = texture(inputTex, uv).g;
	float b = texture(inputTex, uv - dir).b;
	fragColor = vec4(r, g, b, 1.0);
}
`,
	"Grain": fragmentHeader + `
uniform sampler2D inputTex;
uniform float amount;
void main() {
	vec3 src = texture(inputTex, uv).rgb;
	float n = fract(sin(dot(uv * u_time, vec2(12.9898, 78.233))) * 43758.5453) - 0.5;
	fragColor = vec4(src + n * amount, 1.0);
}
`,
}
