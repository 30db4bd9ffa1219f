package constants

import "strings"

// PDF is the only document extension the batch picks up.
const PDF = "pdf"

// ExtractedSuffix is appended to a document stem to name its JSON output.
const ExtractedSuffix = "_extracted.json"

// AllowedExtensions holds the file extensions accepted by the directory scan.
var AllowedExtensions = map[string]struct{}{
	PDF: {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
