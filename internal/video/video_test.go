package video

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    []string
	}{
		{"h264_videotoolbox", 75, []string{"-b:v", "7500k"}},
		{"h264_nvenc", 28, []string{"-cq", "28"}},
		{"libx264", 23, []string{"-crf", "23", "-preset", "medium"}},
	}

	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, QualityArgs(tt.encoder, tt.quality)); diff != "" {
				t.Errorf("QualityArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	params := Params{Width: 1280, Height: 720, FPS: 30, Encoder: "libx264", Quality: 23}

	args := strings.Join(buildFFmpegArgs("out.mp4", params), " ")
	for _, want := range []string{"-video_size 1280x720", "-framerate 30", "-i -", "-c:v libx264"} {
		if !strings.Contains(args, want) {
			t.Errorf("Expected %q in %q", want, args)
		}
	}
	if !strings.HasSuffix(args, "out.mp4") {
		t.Errorf("Output path must come last: %q", args)
	}
	if strings.Contains(args, "-shortest") {
		t.Error("Audio flags without an audio track")
	}

	params.AudioPath = "voice.mp3"
	args = strings.Join(buildFFmpegArgs("out.mp4", params), " ")
	if !strings.Contains(args, "-i voice.mp3 -map 0:v -map 1:a") {
		t.Errorf("Audio track not mapped: %q", args)
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	img.Set(2, 2, color.NRGBA{R: 255, A: 255})
	img.Set(3, 2, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, img); err != nil {
		t.Fatalf("writeRawRGBA failed: %v", err)
	}

	want := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("Raw frame mismatch (-want +got):\n%s", diff)
	}
}
