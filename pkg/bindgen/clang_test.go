package bindgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/opusbind/pkg/core"
)

const astFixture = `{
  "kind": "TranslationUnitDecl",
  "inner": [
    {"kind": "TypedefDecl", "name": "__int128_t", "isImplicit": true, "type": {"qualType": "__int128"}},
    {"kind": "TypedefDecl", "name": "opus_int32", "type": {"qualType": "int"}},
    {"kind": "TypedefDecl", "name": "__builtin_va_list", "type": {"qualType": "char *"}},
    {"kind": "RecordDecl", "name": "OpusEncoder", "tagUsed": "struct"},
    {"kind": "TypedefDecl", "name": "OpusEncoder", "type": {"qualType": "struct OpusEncoder"}},
    {"kind": "FunctionDecl", "name": "opus_encoder_create",
     "type": {"qualType": "OpusEncoder *(opus_int32, int, int, int *)"},
     "inner": [
       {"kind": "ParmVarDecl", "name": "Fs", "type": {"qualType": "opus_int32"}},
       {"kind": "ParmVarDecl", "name": "channels", "type": {"qualType": "int"}},
       {"kind": "ParmVarDecl", "name": "application", "type": {"qualType": "int"}},
       {"kind": "ParmVarDecl", "name": "error", "type": {"qualType": "int *"}},
       {"kind": "FullComment", "inner": [
         {"kind": "ParagraphComment", "inner": [
           {"kind": "TextComment", "text": " Allocates and initializes"},
           {"kind": "TextComment", "text": " an encoder state."}
         ]}
       ]}
     ]},
    {"kind": "FunctionDecl", "name": "opus_encoder_create",
     "type": {"qualType": "OpusEncoder *(opus_int32, int, int, int *)"}},
    {"kind": "FunctionDecl", "name": "opus_encoder_ctl", "variadic": true,
     "type": {"qualType": "int (OpusEncoder *, int, ...)"},
     "inner": [
       {"kind": "ParmVarDecl", "name": "st", "type": {"qualType": "OpusEncoder *"}},
       {"kind": "ParmVarDecl", "name": "request", "type": {"qualType": "int"}}
     ]},
    {"kind": "FunctionDecl", "name": "__opus_check_int", "type": {"qualType": "int (int)"}},
    {"kind": "EnumDecl", "inner": [
      {"kind": "EnumConstantDecl", "name": "MODE_A"},
      {"kind": "EnumConstantDecl", "name": "MODE_B", "inner": [
        {"kind": "ConstantExpr", "value": "5", "inner": [
          {"kind": "IntegerLiteral", "value": "5"}
        ]}
      ]},
      {"kind": "EnumConstantDecl", "name": "MODE_C"}
    ]},
    {"kind": "EnumDecl"},
    {"kind": "EnumDecl", "name": "Band", "fixedUnderlyingType": {"qualType": "unsigned char"}, "inner": [
      {"kind": "EnumConstantDecl", "name": "BAND_NARROW"}
    ]},
    {"kind": "RecordDecl", "name": "Later", "tagUsed": "struct"},
    {"kind": "RecordDecl", "name": "Later", "tagUsed": "struct", "completeDefinition": true}
  ]
}`

func TestCollect(t *testing.T) {
	var root astNode
	require.NoError(t, json.Unmarshal([]byte(astFixture), &root))

	d := &Declarations{}
	collect(&root, d, true)

	assert.Equal(t, []Typedef{
		{Name: "opus_int32", Type: "int"},
		{Name: "OpusEncoder", Type: "struct OpusEncoder"},
	}, d.Typedefs)

	assert.Equal(t, []Record{
		{Tag: "struct", Name: "OpusEncoder"},
		{Tag: "struct", Name: "Later", Complete: true},
	}, d.Records)

	require.Len(t, d.Functions, 2)
	create := d.Functions[0]
	assert.Equal(t, "opus_encoder_create", create.Name)
	assert.Equal(t, "OpusEncoder *", create.Result)
	assert.Equal(t, []Param{
		{Name: "Fs", Type: "opus_int32"},
		{Name: "channels", Type: "int"},
		{Name: "application", Type: "int"},
		{Name: "error", Type: "int *"},
	}, create.Params)
	assert.Equal(t, "Allocates and initializes an encoder state.", create.Doc)

	ctl := d.Functions[1]
	assert.True(t, ctl.Variadic)
	assert.Equal(t, "int", ctl.Result)

	require.Len(t, d.Enums, 2)
	assert.Equal(t, "", d.Enums[0].Name)
	assert.Equal(t, []EnumConstant{
		{Name: "MODE_A", Value: 0},
		{Name: "MODE_B", Value: 5},
		{Name: "MODE_C", Value: 6},
	}, d.Enums[0].Constants)
	assert.Equal(t, "Band", d.Enums[1].Name)
	assert.Equal(t, "unsigned char", d.Enums[1].Underlying)
}

func TestCollectWithoutComments(t *testing.T) {
	var root astNode
	require.NoError(t, json.Unmarshal([]byte(astFixture), &root))

	d := &Declarations{}
	collect(&root, d, false)
	assert.Empty(t, d.Functions[0].Doc)
}

func TestResultType(t *testing.T) {
	assert.Equal(t, "OpusEncoder *", resultType("OpusEncoder *(opus_int32, int, int, int *)"))
	assert.Equal(t, "int", resultType("int (void)"))
	assert.Equal(t, "const char *", resultType("const char *(int)"))
	assert.Equal(t, "int", resultType("int"))
}

// clangStub answers the three invocations ClangParser makes
func clangStub(t *testing.T, headerDefines, baseDefines string) func(context.Context, string, ...string) ([]byte, error) {
	return func(_ context.Context, bin string, args ...string) ([]byte, error) {
		assert.Equal(t, "clang", bin)
		assert.Equal(t, []string{"-x", "c", "-I/opt/opus/include", "-DOPUS_BUILD"}, args[:4])
		switch {
		case slices.Contains(args, "-ast-dump=json"):
			return []byte(astFixture), nil
		case args[len(args)-1] == "/src/opus_ffi.h":
			return []byte(headerDefines), nil
		default:
			return []byte(baseDefines), nil
		}
	}
}

func TestClangParserParse(t *testing.T) {
	p := &ClangParser{
		Run: clangStub(t,
			"#define __clang__ 1\n#define __STDC__ 1\n#define OPUS_OK 0\n#define OPUS_AUTO -1000\n#define _RESERVED 3\n#define __STDC_VERSION__ 201710L\n",
			"#define __clang__ 1\n#define __STDC__ 1\n#define __STDC_VERSION__ 201112L\n",
		),
	}

	d, err := p.Parse(context.Background(), Request{
		Header:       "/src/opus_ffi.h",
		IncludePaths: []string{"/opt/opus/include"},
		ExtraArgs:    []string{"-DOPUS_BUILD"},
	})
	require.NoError(t, err)

	assert.Len(t, d.Functions, 2)
	assert.Empty(t, d.Functions[0].Doc)
	// __STDC_VERSION__ differs from the baseline but is reserved
	assert.Equal(t, []Macro{
		{Name: "OPUS_AUTO", Value: -1000},
		{Name: "OPUS_OK", Value: 0},
	}, d.Macros)
}

func TestClangParserMissingBinary(t *testing.T) {
	p := &ClangParser{
		Bin: "clang-missing",
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return nil, fmt.Errorf("exec: %w", exec.ErrNotFound)
		},
	}

	_, err := p.Parse(context.Background(), Request{Header: "/src/opus_ffi.h"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrToolNotFound))
	assert.Contains(t, core.Hint(err), "clang-missing")
}

func TestClangParserBadAST(t *testing.T) {
	p := &ClangParser{
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return []byte("not json"), nil
		},
	}

	_, err := p.Parse(context.Background(), Request{Header: "/src/opus_ffi.h"})
	assert.ErrorContains(t, err, "decoding AST")
}
