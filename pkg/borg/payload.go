package borg

// The structs in this file mirror the --json payloads borg prints on
// stdout. Unknown fields are ignored so that newer borg releases with
// additional keys still decode.

// Repository identifies a borg repository.
type Repository struct {
	ID           string    `json:"id"`
	Location     string    `json:"location"`
	LastModified Timestamp `json:"last_modified"`
}

// Encryption describes a repository's encryption configuration.
type Encryption struct {
	Mode EncryptionMode `json:"mode"`
	// Keyfile is the local key path for keyfile modes, empty otherwise.
	Keyfile string `json:"keyfile,omitempty"`
}

// CacheStats are the chunk-level counters of the local repository cache.
type CacheStats struct {
	TotalChunks       uint64 `json:"total_chunks"`
	TotalCSize        uint64 `json:"total_csize"`
	TotalSize         uint64 `json:"total_size"`
	TotalUniqueChunks uint64 `json:"total_unique_chunks"`
	UniqueCSize       uint64 `json:"unique_csize"`
	UniqueSize        uint64 `json:"unique_size"`
}

// Cache describes the local cache of a repository.
type Cache struct {
	Path  string     `json:"path"`
	Stats CacheStats `json:"stats"`
}

// Limits reports how close an archive is to borg's internal limits.
type Limits struct {
	MaxArchiveSize float64 `json:"max_archive_size"`
}

// ArchiveStats summarizes the data volume of a single archive.
type ArchiveStats struct {
	CompressedSize   uint64 `json:"compressed_size"`
	DeduplicatedSize uint64 `json:"deduplicated_size"`
	NFiles           uint64 `json:"nfiles"`
	OriginalSize     uint64 `json:"original_size"`
}

// Archive is the full description of one archive as printed by borg
// create --json and borg info.
type Archive struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Comment  string       `json:"comment,omitempty"`
	Start    Timestamp    `json:"start"`
	End      Timestamp    `json:"end"`
	Duration float64      `json:"duration"`
	Stats    ArchiveStats `json:"stats"`
	Limits   Limits       `json:"limits"`
	CommandLine   []string `json:"command_line,omitempty"`
	Hostname      string   `json:"hostname,omitempty"`
	Username      string   `json:"username,omitempty"`
	ChunkerParams []any    `json:"chunker_params,omitempty"`
}

// CreateResult is the payload of borg create --json.
type CreateResult struct {
	Archive    Archive    `json:"archive"`
	Cache      Cache      `json:"cache"`
	Encryption Encryption `json:"encryption"`
	Repository Repository `json:"repository"`
}

// InfoResult is the payload of borg info --json. Archives is populated
// only when the query named an archive.
type InfoResult struct {
	Archives    []Archive  `json:"archives,omitempty"`
	Cache       Cache      `json:"cache"`
	Encryption  Encryption `json:"encryption"`
	Repository  Repository `json:"repository"`
	SecurityDir string     `json:"security_dir,omitempty"`
}

// ListArchive is one entry of borg list --json.
type ListArchive struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Start Timestamp `json:"start"`
}

// ListResult is the payload of borg list --json against a repository.
type ListResult struct {
	Archives   []ListArchive `json:"archives"`
	Encryption Encryption    `json:"encryption"`
	Repository Repository    `json:"repository"`
}
