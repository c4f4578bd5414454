package generator

// ClientFileData is the data passed to the client template.
type ClientFileData struct {
	PackageName string
	Source      SourceData
	StdImports  []ImportData
	Imports     []ImportData

	TypeName        string
	ConstructorName string
	// UnitConst names the constant holding UnitName.
	UnitConst string
	UnitName  string
	// InterfaceType is the contract interface as referenced from the
	// generated package, e.g. "nasa.NASA".
	InterfaceType string
	// Description is a preformatted doc comment, or empty.
	Description string
	// Digest is a fixed-width placeholder replaced by the source digest
	// once the file is formatted.
	Digest string

	Methods []MethodData
}

// SourceData records what the file was generated from.
type SourceData struct {
	Contract    string
	Namespace   string
	Environment string
	Root        string
}

// ImportData is one import spec.
type ImportData struct {
	Alias string
	Path  string
}

// MethodData describes one rendered call.
type MethodData struct {
	Name string
	// Comment is a preformatted doc comment ending in a newline.
	Comment    string
	Route      string
	Signature  string
	ResultType string
	Params     []ParamData
}

// ParamData describes one wire parameter of a call.
type ParamData struct {
	VarName  string
	GoType   string
	WireKey  string
	Optional bool
	// Deref is set when an optional parameter was wrapped in a pointer.
	Deref bool
}
