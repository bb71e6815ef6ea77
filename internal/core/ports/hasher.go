package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashFile computes the hash of a file's content.
	HashFile(path string) (string, error)
	// HashValue computes a stable hash of a config result.
	HashValue(v any) (string, error)
}
