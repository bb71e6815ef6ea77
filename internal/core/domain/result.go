package domain

// ConfigResult is a located config file and its contents.
// Contents is the parsed structure, or the raw text when parsing was not requested.
type ConfigResult struct {
	Contents any    `json:"contents"`
	FilePath string `json:"filePath"`
}

// PackageJSON is a parsed package manifest.
type PackageJSON map[string]any
