package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func solidBuffer(w, h int, v byte) *imaging.Buffer {
	buf := imaging.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, v, v, v, 255)
		}
	}
	return buf
}

func TestRegistry_Lookup(t *testing.T) {
	for _, name := range []string{"brightness", "contrast", "blur", "grayscale", "invert", "crop"} {
		op, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, op.Name())
	}
}

func TestRegistry_UnknownOperation(t *testing.T) {
	_, err := Lookup("sepia")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestRegistry_Names(t *testing.T) {
	names := Default().Names()
	assert.Contains(t, names, "brightness")
	assert.IsIncreasing(t, names)
}

func TestBrightness_Apply(t *testing.T) {
	op, err := Lookup("brightness")
	require.NoError(t, err)

	out, err := op.Apply(solidBuffer(2, 2, 100), imaging.FullRegion(), map[string]float64{"factor": 1.5})
	require.NoError(t, err)

	r, g, b, a := out.At(0, 0)
	assert.Equal(t, byte(150), r)
	assert.Equal(t, byte(150), g)
	assert.Equal(t, byte(150), b)
	assert.Equal(t, byte(255), a)
}

func TestBrightness_ClampsAt255(t *testing.T) {
	op, _ := Lookup("brightness")
	out, err := op.Apply(solidBuffer(1, 1, 200), imaging.FullRegion(), map[string]float64{"factor": 2.0})
	require.NoError(t, err)
	r, _, _, _ := out.At(0, 0)
	assert.Equal(t, byte(255), r)
}

func TestBrightness_RegionOnly(t *testing.T) {
	op, _ := Lookup("brightness")
	out, err := op.Apply(solidBuffer(4, 4, 100), imaging.NewRegion(0, 0, 2, 2), map[string]float64{"factor": 2.0})
	require.NoError(t, err)

	r, _, _, _ := out.At(0, 0)
	assert.Equal(t, byte(200), r, "inside region scaled")
	r, _, _, _ = out.At(3, 3)
	assert.Equal(t, byte(100), r, "outside region untouched")
}

func TestBrightness_DoesNotMutateInput(t *testing.T) {
	op, _ := Lookup("brightness")
	in := solidBuffer(2, 2, 100)
	_, err := op.Apply(in, imaging.FullRegion(), map[string]float64{"factor": 2.0})
	require.NoError(t, err)
	r, _, _, _ := in.At(0, 0)
	assert.Equal(t, byte(100), r)
}

func TestContrast_Apply(t *testing.T) {
	op, _ := Lookup("contrast")
	out, err := op.Apply(solidBuffer(1, 1, 100), imaging.FullRegion(), map[string]float64{
		"factor":            1.5,
		"brightness_offset": 10,
	})
	require.NoError(t, err)
	r, _, _, _ := out.At(0, 0)
	assert.Equal(t, byte(160), r)
}

func TestInvert_Apply(t *testing.T) {
	op, _ := Lookup("invert")
	out, err := op.Apply(solidBuffer(1, 1, 100), imaging.FullRegion(), nil)
	require.NoError(t, err)
	r, _, _, a := out.At(0, 0)
	assert.Equal(t, byte(155), r)
	assert.Equal(t, byte(255), a, "alpha preserved")
}

func TestGrayscale_Apply(t *testing.T) {
	op, _ := Lookup("grayscale")
	buf := imaging.NewBuffer(1, 1)
	buf.Set(0, 0, 255, 0, 0, 255)
	out, err := op.Apply(buf, imaging.FullRegion(), nil)
	require.NoError(t, err)
	r, g, b, _ := out.At(0, 0)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.Equal(t, byte(76), r) // 0.299 * 255
}

func TestBlur_UniformBufferUnchanged(t *testing.T) {
	op, _ := Lookup("blur")
	out, err := op.Apply(solidBuffer(5, 5, 100), imaging.FullRegion(), map[string]float64{"kernel_size": 3})
	require.NoError(t, err)
	r, _, _, _ := out.At(2, 2)
	assert.Equal(t, byte(100), r)
}

func TestCrop_Apply(t *testing.T) {
	op, _ := Lookup("crop")
	out, err := op.Apply(solidBuffer(4, 4, 100), imaging.NewRegion(1, 1, 2, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 3, out.Height)
}

func TestCrop_EmptyRegion(t *testing.T) {
	op, _ := Lookup("crop")
	_, err := op.Apply(solidBuffer(4, 4, 100), imaging.NewRegion(10, 10, 2, 2), nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		params  map[string]float64
		wantErr bool
	}{
		{name: "brightness in range", op: "brightness", params: map[string]float64{"factor": 2.5}},
		{name: "brightness too high", op: "brightness", params: map[string]float64{"factor": 5.5}, wantErr: true},
		{name: "brightness negative", op: "brightness", params: map[string]float64{"factor": -0.1}, wantErr: true},
		{name: "brightness empty params accepted", op: "brightness", params: nil},
		{name: "contrast in range", op: "contrast", params: map[string]float64{"factor": 1.0, "brightness_offset": 50}},
		{name: "contrast offset out of range", op: "contrast", params: map[string]float64{"brightness_offset": 150}, wantErr: true},
		{name: "blur kernel in range", op: "blur", params: map[string]float64{"kernel_size": 7}},
		{name: "blur kernel too small", op: "blur", params: map[string]float64{"kernel_size": 1}, wantErr: true},
		{name: "blur kernel too large", op: "blur", params: map[string]float64{"kernel_size": 33}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Lookup(tt.op)
			require.NoError(t, err)
			err = op.ValidateParams(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApply_EmptyInput(t *testing.T) {
	op, _ := Lookup("brightness")
	_, err := op.Apply(nil, imaging.FullRegion(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
