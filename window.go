package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		in vec3 vc;
		in float vs;
		uniform mat4 proj;
		out vec3 colour;
		void main() {
			gl_Position = proj * vec4(vp, 0.0, 1.0);
			gl_PointSize = vs;
			colour = vc;
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec3 colour;
		uniform int disc;
		out vec4 frag_colour;
		void main() {
			if (disc == 1 && length(gl_PointCoord - vec2(0.5)) > 0.5) {
				discard;
			}
			frag_colour = vec4(colour, 1);
		}
	` + "\x00"
)

// x, y, r, g, b, size
const vertexSize = 6

var glfwKeys = func() map[string]glfw.Key {
	m := map[string]glfw.Key{
		"up":     glfw.KeyUp,
		"down":   glfw.KeyDown,
		"left":   glfw.KeyLeft,
		"right":  glfw.KeyRight,
		"escape": glfw.KeyEscape,
		"space":  glfw.KeySpace,
		"=":      glfw.KeyEqual,
		"-":      glfw.KeyMinus,
	}
	for i := 0; i < 26; i++ {
		m[string(rune('a'+i))] = glfw.KeyA + glfw.Key(i)
	}
	for i := 0; i < 10; i++ {
		m[string(rune('0'+i))] = glfw.Key0 + glfw.Key(i)
	}
	return m
}()

type keyBinding struct {
	name string
	key  glfw.Key
}

// WindowHost is a Host drawing through OpenGL into a glfw window. Draw
// calls are batched in screen pixels and flushed by Present. All methods
// must be called from the locked main thread.
type WindowHost struct {
	window *glfw.Window
	title  string

	program     uint32
	discUniform int32
	vao, vbo    uint32

	background color.RGBA
	lines      []float32
	points     []float32

	keys   []keyBinding
	keymap Keymap

	frameCount  int
	lastFpsTime float64
}

// NewWindowHost opens a window and prepares the GL pipeline. The caller
// must have locked the OS thread.
func NewWindowHost(cfg WindowConfig, keymap Keymap) (*WindowHost, error) {
	h := &WindowHost{title: cfg.Title, keymap: keymap}
	for name := range keymap {
		k, ok := glfwKeys[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, name)
		}
		h.keys = append(h.keys, keyBinding{name: name, key: k})
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	h.window = window

	if err := gl.Init(); err != nil {
		h.Close()
		return nil, fmt.Errorf("failed to initialize opengl: %w", err)
	}

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.program = program
	gl.UseProgram(program)

	proj := mgl32.Ortho2D(0, float32(cfg.Width), float32(cfg.Height), 0)
	projUniform := gl.GetUniformLocation(program, gl.Str("proj\x00"))
	gl.UniformMatrix4fv(projUniform, 1, false, &proj[0])
	h.discUniform = gl.GetUniformLocation(program, gl.Str("disc\x00"))

	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)

	const stride = vertexSize * 4
	attrib := func(name string, size int32, offset int) {
		loc := uint32(gl.GetAttribLocation(program, gl.Str(name+"\x00")))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
	}
	attrib("vp", 2, 0)
	attrib("vc", 3, 2*4)
	attrib("vs", 1, 5*4)

	gl.Enable(gl.PROGRAM_POINT_SIZE)

	h.lastFpsTime = glfw.GetTime()
	return h, nil
}

// Poll processes window events and reads the bound keys.
func (h *WindowHost) Poll() (InputState, error) {
	glfw.PollEvents()
	var held []string
	for _, b := range h.keys {
		if h.window.GetKey(b.key) == glfw.Press {
			held = append(held, b.name)
		}
	}
	return InputState{
		Quit: h.window.ShouldClose(),
		Held: h.keymap.Resolve(held),
	}, nil
}

func (h *WindowHost) Clear(c color.RGBA) {
	h.background = c
	h.lines = h.lines[:0]
	h.points = h.points[:0]
}

// DrawLine queues a line. Core profile contexts only guarantee one pixel
// wide lines, so width is not applied.
func (h *WindowHost) DrawLine(a, b image.Point, c color.RGBA, width float32) {
	h.lines = appendVertex(h.lines, a, c, 1)
	h.lines = appendVertex(h.lines, b, c, 1)
}

func (h *WindowHost) DrawPoint(p image.Point, c color.RGBA, radius int) {
	h.points = appendVertex(h.points, p, c, float32(2*radius+1))
}

func appendVertex(buf []float32, p image.Point, c color.RGBA, size float32) []float32 {
	return append(buf,
		float32(p.X)+0.5, float32(p.Y)+0.5,
		float32(c.R)/255, float32(c.G)/255, float32(c.B)/255,
		size)
}

// Present draws the queued primitives and swaps buffers. The swap blocks
// on vsync, which paces the animation.
func (h *WindowHost) Present() error {
	fbw, fbh := h.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	bg := h.background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(h.program)
	gl.BindVertexArray(h.vao)
	h.flush(gl.LINES, h.lines, 0)
	h.flush(gl.POINTS, h.points, 1)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%x", code)
	}

	h.window.SwapBuffers()
	h.lines = h.lines[:0]
	h.points = h.points[:0]

	// FPS counter, refreshed every second
	h.frameCount++
	if now := glfw.GetTime(); now-h.lastFpsTime >= 1.0 {
		h.window.SetTitle(fmt.Sprintf("%s | FPS: %d", h.title, h.frameCount))
		h.frameCount = 0
		h.lastFpsTime = now
	}
	return nil
}

func (h *WindowHost) flush(mode uint32, verts []float32, disc int32) {
	if len(verts) == 0 {
		return
	}
	gl.Uniform1i(h.discUniform, disc)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(verts)/vertexSize))
}

// Close releases GL objects and the window.
func (h *WindowHost) Close() error {
	if h.window != nil {
		if h.program != 0 {
			gl.DeleteBuffers(1, &h.vbo)
			gl.DeleteVertexArrays(1, &h.vao)
			gl.DeleteProgram(h.program)
		}
		h.window.Destroy()
		h.window = nil
	}
	glfw.Terminate()
	return nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %v: %v", source, log)
	}

	return shader, nil
}
