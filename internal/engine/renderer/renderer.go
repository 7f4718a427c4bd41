// Package renderer draws the height field grid with OpenGL.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ripple/internal/engine/renderer/shaders"
	"github.com/Faultbox/ripple/internal/engine/shader"
	"github.com/Faultbox/ripple/internal/logger"
	"github.com/Faultbox/ripple/pkg/math"
)

// MatrixUniform is the vertex shader uniform receiving the final matrix.
const MatrixUniform = "transformationMatrix"

// ErrBufferSize is returned when an upload does not match the allocated buffer.
var ErrBufferSize = errors.New("vertex data does not match buffer size")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Mode       Mode
	ClearColor [4]float32
	PointSize  float32
	Amplitude  float32 // Used by the fragment shader to normalize heights
}

// Renderer owns the grid's GPU buffers and shader program.
type Renderer struct {
	config Config
	log    *zap.Logger

	program      uint32
	locMatrix    int32
	locAmplitude int32 // -1 when the shader optimizes it out

	vao uint32
	vbo uint32
	ebo uint32

	vertexCount int32
	indexCount  int32
	bufferBytes int
}

// New creates the program and buffers for a grid of vertexCount vertices.
// indices is required for ModeTriangles and ignored otherwise.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, vertexCount int, indices []uint16) (*Renderer, error) {
	r := &Renderer{
		config:      cfg,
		log:         logger.Named("renderer"),
		vertexCount: int32(vertexCount),
		bufferBytes: vertexCount * 3 * 4,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	program, err := shader.CompileProgram(shaders.RippleVertexShader, shaders.RippleFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ripple shader: %w", err)
	}
	r.program = program

	r.locMatrix, err = shader.RequireUniform(program, MatrixUniform)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.locAmplitude = shader.GetUniform(program, "uAmplitude")

	if cfg.Mode.Indexed() && len(indices) == 0 {
		r.Close()
		return nil, fmt.Errorf("%s mode needs an index buffer", cfg.Mode)
	}
	r.createBuffers(indices)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.log.Debug("grid buffers created",
		zap.Uint32("program", r.program),
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Int32("vertices", r.vertexCount),
		zap.Int32("indices", r.indexCount),
		zap.Stringer("mode", cfg.Mode),
	)
	return r, nil
}

func (r *Renderer) createBuffers(indices []uint16) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	// Heights change every frame
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, r.bufferBytes, nil, gl.STREAM_DRAW)

	// Position attribute (location = 0): 3 tightly packed floats
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	if r.config.Mode.Indexed() {
		gl.GenBuffers(1, &r.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
		r.indexCount = int32(len(indices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload replaces the vertex buffer contents with the current grid.
func (r *Renderer) Upload(vertices []float32) error {
	if len(vertices)*4 != r.bufferBytes {
		return fmt.Errorf("%w: got %d bytes, buffer holds %d", ErrBufferSize, len(vertices)*4, r.bufferBytes)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, r.bufferBytes, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw clears the frame and draws the grid with the given final matrix.
func (r *Renderer) Draw(final math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	shader.SetUniformMatrix4(r.locMatrix, final)
	if r.locAmplitude >= 0 {
		gl.Uniform1f(r.locAmplitude, r.config.Amplitude)
	}
	if r.config.Mode == ModePoints {
		gl.PointSize(r.config.PointSize)
	}

	gl.BindVertexArray(r.vao)
	if r.config.Mode.Indexed() {
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_SHORT, 0)
	} else {
		gl.DrawArrays(r.config.Mode.primitive(), 0, r.vertexCount)
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// CheckError returns the pending OpenGL error, if any.
func CheckError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%04x: %s", code, errorName(code))
	}
	return nil
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "operation not allowed in the current state"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	default:
		return "unknown error"
	}
}
