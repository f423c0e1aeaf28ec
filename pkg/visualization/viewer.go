// Package visualization exports slices of gridded data as images.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"girfdata/pkg/data"
)

// Viewer extracts slices from the first (z, y, x) volume of gridded data,
// i.e. the volume of the first "other" index and the first coil.
type Viewer struct {
	// volumeData holds the (z, y, x) volume in row-major order
	volumeData []float64

	// dimensions of the volume
	width  int
	height int
	depth  int

	// intensity range used to scale voxels to 16 bit gray values
	min, max float64

	// fov is the field of view of the volume in m
	fov data.SpatialDimension[float64]
}

// NewViewer creates a viewer for gridded data with at least three dimensions.
func NewViewer(gd *data.GriddedData) (*Viewer, error) {
	values := gd.Values()
	if values.Rank() < 3 {
		return nil, fmt.Errorf("gridded data needs at least 3 dimensions, got shape %v", values.Shape())
	}

	depth, height, width := values.Size(-3), values.Size(-2), values.Size(-1)
	volume := values.Values()[:depth*height*width]
	if len(volume) == 0 {
		return nil, fmt.Errorf("gridded data of shape %v is empty", values.Shape())
	}

	return &Viewer{
		volumeData: volume,
		width:      width,
		height:     height,
		depth:      depth,
		min:        floats.Min(volume),
		max:        floats.Max(volume),
		fov:        gd.Header().FOV,
	}, nil
}

// VoxelSize returns the size of one voxel in m along each axis.
func (v *Viewer) VoxelSize() data.SpatialDimension[float64] {
	return data.SpatialDimension[float64]{
		Z: v.fov.Z / float64(v.depth),
		Y: v.fov.Y / float64(v.height),
		X: v.fov.X / float64(v.width),
	}
}

func (v *Viewer) gray(value float64) color.Gray16 {
	if v.max == v.min {
		return color.Gray16{}
	}
	scaled := (value - v.min) / (v.max - v.min)
	return color.Gray16{Y: uint16(math.Round(math.Max(0, math.Min(1, scaled)) * 65535))}
}

// ExtractSlice extracts a 2D slice from the volume along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}

		img = image.NewGray16(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				idx := z*v.width*v.height + y*v.width + position
				img.SetGray16(z, y, v.gray(v.volumeData[idx]))
			}
		}

	case "y", "Y":
		// XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				idx := z*v.width*v.height + position*v.width + x
				img.SetGray16(x, z, v.gray(v.volumeData[idx]))
			}
		}

	case "z", "Z":
		// XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				idx := position*v.width*v.height + y*v.width + x
				img.SetGray16(x, y, v.gray(v.volumeData[idx]))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// ExtractRegion extracts a 3D subregion from the volume, returned in
// (z, y, x) order.
func (v *Viewer) ExtractRegion(start, size data.SpatialDimension[int]) ([]float64, error) {
	if start.X < 0 || start.Y < 0 || start.Z < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}

	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}

	if start.X+size.X > v.width || start.Y+size.Y > v.height || start.Z+size.Z > v.depth {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	region := make([]float64, 0, size.X*size.Y*size.Z)
	for z := start.Z; z < start.Z+size.Z; z++ {
		for y := start.Y; y < start.Y+size.Y; y++ {
			row := z*v.width*v.height + y*v.width
			region = append(region, v.volumeData[row+start.X:row+start.X+size.X]...)
		}
	}

	return region, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence extracts and saves every slice along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.width
	case "y", "Y":
		maxPos = v.height
	case "z", "Z":
		maxPos = v.depth
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
