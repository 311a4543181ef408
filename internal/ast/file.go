package ast

import (
	"stylename/internal/source"
)

type FileFlags uint8

const (
	// FileDeclaration marks a declaration-only file (*.d.ts).
	FileDeclaration FileFlags = 1 << iota
)

// LanguageVariant selects the host grammar.
type LanguageVariant uint8

const (
	VariantStandard LanguageVariant = iota
	VariantJSX
)

func (v LanguageVariant) String() string {
	if v == VariantJSX {
		return "jsx"
	}
	return "standard"
}

// File is the root of one parsed source file. Body is a code run covering
// the whole text.
type File struct {
	Path    string
	Span    source.Span
	Flags   FileFlags
	Variant LanguageVariant
	Body    ExprID
}

func (f *File) IsDeclaration() bool { return f.Flags&FileDeclaration != 0 }

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(file File) FileID {
	return FileID(f.Arena.Allocate(file))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}

// FileInfo derives flags and variant from a path.
func FileInfo(path string) (FileFlags, LanguageVariant) {
	var flags FileFlags
	if source.IsDeclarationPath(path) {
		flags |= FileDeclaration
	}
	variant := VariantStandard
	if source.IsJSXPath(path) {
		variant = VariantJSX
	}
	return flags, variant
}
