package domain

import "path/filepath"

const (
	// CfgtrackDirName is the name of the internal project directory.
	CfgtrackDirName = ".cfgtrack"

	// RecordsDirName is the name of the record snapshot directory.
	RecordsDirName = "records"

	// OptionsFileName is the name of the project options file.
	OptionsFileName = "cfgtrack.yaml"

	// PackageManifestName is the name of the package manifest searched by GetPackage.
	PackageManifestName = "package.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default root directory for cfgtrack metadata.
func DefaultCachePath() string {
	return CfgtrackDirName
}

// RecordStorePath returns the record snapshot directory below the given cache directory.
func RecordStorePath(cacheDir string) string {
	return filepath.Join(cacheDir, RecordsDirName)
}
