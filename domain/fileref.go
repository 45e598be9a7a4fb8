package domain

import "strings"

// FileRef is a normalised, workspace-relative POSIX path. It never
// contains ".." segments or backslashes; its extension is preserved
// verbatim. Construction goes through the path resolver's Normalise;
// this type itself performs no validation so that domain stays free
// of the resolver's dependencies.
type FileRef string

// String returns the path as a plain string.
func (f FileRef) String() string {
	return string(f)
}

// Base returns the final path segment (file name with extension).
func (f FileRef) Base() string {
	s := string(f)
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Dir returns the path with its final segment removed, without a
// trailing slash. The workspace root is represented as "".
func (f FileRef) Dir() string {
	s := string(f)
	idx := strings.LastIndex(s, "/")
	if idx < 0 {
		return ""
	}
	return s[:idx]
}

// Ext returns the extension including the leading dot, or "" if none.
func (f FileRef) Ext() string {
	base := f.Base()
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}

// HasPrefix reports whether f lives under dir (dir itself, or any of
// its descendants). dir must already be normalised.
func (f FileRef) HasPrefix(dir string) bool {
	s := string(f)
	if dir == "" {
		return true
	}
	return s == dir || strings.HasPrefix(s, dir+"/")
}

// sourceExtensions lists the extensions the engine treats as
// JS/TS source files, per spec.md §6 "File formats touched".
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	// Supplemented (SPEC_FULL.md §4): ambient .d.ts declaration files
	// are scanned/rewritten like any other TypeScript source file.
	".dts": true,
}

// IsSourceFile reports whether the file's extension is one the engine
// scans and rewrites.
func (f FileRef) IsSourceFile() bool {
	ext := f.Ext()
	if ext == ".ts" && strings.HasSuffix(string(f), ".d.ts") {
		return sourceExtensions[".dts"]
	}
	return sourceExtensions[ext]
}

// StripResolvableExtension removes a .ts/.tsx/.js/.jsx suffix (but not
// .mjs/.cjs, which specifiers always carry explicitly per spec.md §4.1).
func StripResolvableExtension(path string) string {
	for _, ext := range []string{".tsx", ".jsx", ".ts", ".js"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
