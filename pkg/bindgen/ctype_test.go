package bindgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCgoType(t *testing.T) {
	tests := []struct {
		c    string
		want string
	}{
		{"int", "C.int"},
		{"void", ""},
		{"void *", "unsafe.Pointer"},
		{"void **", "*unsafe.Pointer"},
		{"const void *", "unsafe.Pointer"},
		{"unsigned char", "C.uchar"},
		{"const unsigned char *", "*C.uchar"},
		{"const float *restrict", "*C.float"},
		{"opus_int32", "C.opus_int32"},
		{"opus_int16 *", "*C.opus_int16"},
		{"OpusEncoder *", "*C.OpusEncoder"},
		{"const OpusDecoder *", "*C.OpusDecoder"},
		{"struct OpusRepacketizer *", "*C.struct_OpusRepacketizer"},
		{"enum Mode", "C.enum_Mode"},
		{"unsigned char [4]", "*C.uchar"},
		{"int (*)(int, void *)", "unsafe.Pointer"},
		{"long long", "C.longlong"},
	}

	for _, tt := range tests {
		t.Run(tt.c, func(t *testing.T) {
			got, err := cgoType(tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCgoTypeUnsupported(t *testing.T) {
	for _, c := range []string{"int (int)", "long double", "_Bool", "", "const", "int * const char"} {
		t.Run(c, func(t *testing.T) {
			_, err := cgoType(c)
			assert.Error(t, err)
		})
	}
}

func TestIntKindOf(t *testing.T) {
	assert.Equal(t, Int32, intKindOf("int"))
	assert.Equal(t, Uint32, intKindOf("unsigned int"))
	assert.Equal(t, Uint8, intKindOf("unsigned char"))
	assert.Equal(t, Int32, intKindOf("opus_int32"))
}

func TestEnumKind(t *testing.T) {
	consts := func(vs ...int64) []EnumConstant {
		var cs []EnumConstant
		for _, v := range vs {
			cs = append(cs, EnumConstant{Name: "E", Value: v})
		}
		return cs
	}

	tests := []struct {
		name       string
		underlying string
		values     []int64
		want       IntKind
	}{
		{"PlainInt", "int", []int64{0, 5, -1}, Int32},
		{"HighBit", "int", []int64{1, 0x80000000}, Uint32},
		{"NegativeAndWide", "int", []int64{-1, 0x80000000}, Int64},
		{"BeyondUint32", "int", []int64{1 << 32}, Int64},
		{"FixedUnsigned", "unsigned char", []int64{1, 200}, Uint8},
		{"Empty", "int", nil, Int32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enumKind(Enum{Underlying: tt.underlying, Constants: consts(tt.values...)}))
		})
	}
}

func TestNames(t *testing.T) {
	assert.True(t, reserved("__opus_check_int"))
	assert.True(t, reserved("_Static"))
	assert.False(t, reserved("_opus"))
	assert.False(t, reserved("opus_encode"))

	assert.True(t, goSafeName("opus_encode"))
	assert.True(t, goSafeName("OPUS_OK"))
	assert.False(t, goSafeName("len"))
	assert.False(t, goSafeName("func"))
	assert.False(t, goSafeName("C"))
	assert.False(t, goSafeName("_"))

	used := make(map[string]bool)
	assert.Equal(t, "p0", paramName("", 0, used))
	assert.Equal(t, "type_", paramName("type", 1, used))
	assert.Equal(t, "st", paramName("st", 2, used))
	assert.Equal(t, "st_", paramName("st", 3, used))
	assert.Equal(t, "error", paramName("error", 4, used))
}
