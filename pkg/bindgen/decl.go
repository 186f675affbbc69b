// pkg/bindgen/decl.go
package bindgen

// IntKind is the Go integer type a macro constant is emitted with
type IntKind string

const (
	KindDefault IntKind = ""
	Int8        IntKind = "int8"
	Int16       IntKind = "int16"
	Int32       IntKind = "int32"
	Int64       IntKind = "int64"
	Uint8       IntKind = "uint8"
	Uint16      IntKind = "uint16"
	Uint32      IntKind = "uint32"
	Uint64      IntKind = "uint64"

	// KindInt is C int
	KindInt = Int32
)

// Param is a function parameter
type Param struct {
	Name string
	Type string // C qualified type as spelled by the front end
}

// Function is a function prototype
type Function struct {
	Name     string
	Result   string
	Params   []Param
	Variadic bool
	Doc      string
}

// Record is a struct or union
type Record struct {
	Tag      string // "struct" or "union"
	Name     string
	Complete bool
	Doc      string
}

// EnumConstant is one enumerator
type EnumConstant struct {
	Name  string
	Value int64
}

// Enum is an enum declaration. Name is empty for anonymous enums, whose
// constants are still emitted.
type Enum struct {
	Name       string
	Underlying string
	Constants  []EnumConstant
	Doc        string
}

// Typedef is a type alias
type Typedef struct {
	Name string
	Type string
	Doc  string
}

// Macro is an object-like macro with an integer value. Unsigned marks values
// above the int64 range, stored as their two's complement in Value.
type Macro struct {
	Name     string
	Value    int64
	Unsigned bool
	Kind     IntKind
}

// Declarations is everything reachable from the umbrella header
type Declarations struct {
	Functions []Function
	Records   []Record
	Enums     []Enum
	Typedefs  []Typedef
	Macros    []Macro
}

// Empty reports whether there is nothing to bind
func (d *Declarations) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.Functions) == 0 && len(d.Records) == 0 && len(d.Enums) == 0 &&
		len(d.Typedefs) == 0 && len(d.Macros) == 0
}
