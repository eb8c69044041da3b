package cmd

import (
	"bytes"
	"context"
	"encoding/xml"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "skyscenes "+Version))

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestUnknownScene(t *testing.T) {
	_, err := execute(t, "snapshot", "--scene", "aurora", "--out", "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scene")
}

func TestSnapshotPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burst.png")
	_, err := execute(t, "snapshot", "--scene", "fireworks", "--click", "200,80",
		"--frames", "20", "--width", "320", "--height", "200", "--out", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestSnapshotSVGFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drones.svg")
	_, err := execute(t, "snapshot", "--scene", "sandbox", "--fire", "--frames", "5", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Contains(t, string(data), "<title>sandbox</title>")
}

func TestSnapshotSequenceToStdout(t *testing.T) {
	out, err := execute(t, "snapshot", "--scene", "hero", "--frames", "2", "--format", "svg", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	dir := t.TempDir()
	_, err = execute(t, "snapshot", "--scene", "hero", "--click", "10,10", "--frames", "3",
		"--width", "64", "--height", "48", "--out", filepath.Join(dir, "f-%02d.png"))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSnapshotPercentInName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "100%.png")
	_, err := execute(t, "snapshot", "--scene", "hero", "--frames", "3",
		"--width", "32", "--height", "24", "--out", path)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "100%.png", entries[0].Name())
}

func TestIsFramePattern(t *testing.T) {
	for name, want := range map[string]bool{
		"f-%d.png":        true,
		"out/f-%04d.svg":  true,
		"100%%-%03d.png":  true,
		"100%.png":        false,
		"snapshot.png":    false,
		"%d-%d.png":       false,
		"%s.png":          false,
		"50%-frame%d.png": false,
	} {
		assert.Equal(t, want, isFramePattern(name), name)
	}
}

func TestSnapshotRejectsBadClick(t *testing.T) {
	_, err := execute(t, "snapshot", "--click", "12", "--out", "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want x,y")
}

func TestSnapshotJobIsDeterministic(t *testing.T) {
	render := func() []draw.Command {
		sc, err := scene.New("fireworks", scene.DefaultOptions())
		require.NoError(t, err)
		job := snapshotJob{
			scene: sc, width: 400, height: 300, frames: 60,
			step: time.Second / 60, format: "svg",
			clicks: []geom.Vec2{geom.V(200, 100)},
		}
		var last []draw.Command
		require.NoError(t, job.run(false, func(i int, c *draw.Canvas) error {
			assert.Equal(t, 60, i)
			last = append([]draw.Command(nil), c.Commands()...)
			return nil
		}))
		return last
	}
	a, b := render(), render()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 3.5, 7")
	require.NoError(t, err)
	assert.Equal(t, geom.V(3.5, 7), p)

	_, err = parsePoint("a,1")
	assert.Error(t, err)
	_, err = parsePoint("1,b")
	assert.Error(t, err)
}
