package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// FrameWriter accepts a stream of equally sized frames and finalises the output
// on Close.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Params describes the output video.
type Params struct {
	Width, Height int
	FPS           int
	Encoder       string
	Quality       int
	AudioPath     string
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	params Params
	frames int
}

// NewFFmpegEncoder starts ffmpeg writing to videoPath. The process stops when ctx
// is cancelled.
func NewFFmpegEncoder(ctx context.Context, videoPath string, params Params) (*FFmpegEncoder, error) {
	e := &FFmpegEncoder{params: params}
	e.cmd = exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(videoPath, params)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return e, nil
}

// WriteFrame sends one frame. Frames must match the configured size.
func (e *FFmpegEncoder) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != e.params.Width || b.Dy() != e.params.Height {
		return fmt.Errorf("frame %dx%d does not match video %dx%d", b.Dx(), b.Dy(), e.params.Width, e.params.Height)
	}
	if err := writeRawRGBA(e.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	e.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (e *FFmpegEncoder) Frames() int {
	return e.frames
}

// Close ends the stream and waits for ffmpeg to finish.
func (e *FFmpegEncoder) Close() error {
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, e.stderr.String())
	}
	return nil
}

func buildFFmpegArgs(videoPath string, params Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}

	if params.AudioPath != "" {
		args = append(args, "-i", params.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}

	args = append(args, "-pix_fmt", "yuv420p", "-c:v", params.Encoder)
	args = append(args, QualityArgs(params.Encoder, params.Quality)...)
	args = append(args, videoPath)
	return args
}

// QualityArgs returns the rate-control flags for the given H.264 encoder.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// 75 -> 7.5 Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
