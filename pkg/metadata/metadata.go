package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/utils"
)

const metadataFile = "metadata.json"

// Metadata summarises the last import written next to the database.
type Metadata struct {
	Version         int `json:",omitempty"`
	Packages        int
	Vulnerabilities int
	Sources         []string `json:",omitempty"`
	ImportedFrom    string   `json:",omitempty"`
	UpdatedAt       time.Time
}

type Client struct {
	filePath string
}

func NewClient(dbDir string) Client {
	return Client{
		filePath: Path(dbDir),
	}
}

func Path(dbDir string) string {
	return filepath.Join(dbDir, metadataFile)
}

func (c Client) Get() (Metadata, error) {
	var metadata Metadata
	if err := utils.UnmarshalJSONFile(&metadata, c.filePath); err != nil {
		return Metadata{}, xerrors.Errorf("metadata error: %w", err)
	}
	return metadata, nil
}

// Update overwrites the file with meta, creating the directory if needed.
func (c Client) Update(meta Metadata) error {
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0o744); err != nil {
		return xerrors.Errorf("mkdir error: %w", err)
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return xerrors.Errorf("json encode error: %w", err)
	}
	if err = os.WriteFile(c.filePath, append(b, '\n'), 0o644); err != nil {
		return xerrors.Errorf("unable to write %s: %w", c.filePath, err)
	}
	return nil
}

// Delete removes the metadata file.
func (c Client) Delete() error {
	if err := os.Remove(c.filePath); err != nil {
		return xerrors.Errorf("unable to remove %s: %w", c.filePath, err)
	}
	return nil
}
