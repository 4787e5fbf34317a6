// Package assets loads the CPU-side data of a model and watches its files
// for changes.
package assets

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/pkg/mesh"
)

// Source names the files the viewer displays.
type Source struct {
	Model       string
	Texture     string // empty selects a plain white texture
	Triangulate bool
}

// Model is the CPU-side data uploaded to the GPU.
type Model struct {
	Mesh    *mesh.Buffer
	Texture *image.RGBA
}

// Load parses the model and decodes the texture concurrently. It
// touches no GL state and may run off the main thread.
func Load(src Source) (*Model, error) {
	var a Model
	var g errgroup.Group

	g.Go(func() error {
		var opts []mesh.Option
		if src.Triangulate {
			opts = append(opts, mesh.WithTriangulation())
		}
		b, err := mesh.Load(src.Model, opts...)
		if err != nil {
			return err
		}
		a.Mesh = b
		return nil
	})

	g.Go(func() error {
		if src.Texture == "" {
			a.Texture = texture.White()
			return nil
		}
		img, err := texture.Load(src.Texture)
		if err != nil {
			return fmt.Errorf("texture %s: %w", src.Texture, err)
		}
		a.Texture = img
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}
