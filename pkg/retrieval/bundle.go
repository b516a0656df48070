package retrieval

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Bundle layout on disk:
//
//	metadata.json: header with embedding dimension and item count
//	vectors.bin:   count*dimension float32, little endian, row-major
//	items.json:    parallel item metadata, same order as vectors
const (
	metadataFile = "metadata.json"
	vectorsFile  = "vectors.bin"
	itemsFile    = "items.json"
)

type bundleHeader struct {
	Dimension int `json:"dimension"`
	Count     int `json:"count"`
}

// Save writes the built index to dir so it can be reloaded without re-calling
// the embedding backend. A loaded index reproduces identical search results.
func (ix *Index) Save(dir string) error {
	if !ix.built {
		return fmt.Errorf("cannot save an unbuilt index")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	header := bundleHeader{Dimension: ix.dimension, Count: len(ix.items)}
	headerBytes, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), headerBytes, 0644); err != nil {
		return err
	}

	vecBytes := make([]byte, 0, len(ix.vectors)*ix.dimension*4)
	buf := make([]byte, 4)
	for _, vec := range ix.vectors {
		for _, v := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			vecBytes = append(vecBytes, buf...)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, vectorsFile), vecBytes, 0644); err != nil {
		return err
	}

	itemBytes, err := json.Marshal(ix.items)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, itemsFile), itemBytes, 0644)
}

// Load reads a bundle from dir into the index. The header is validated before
// the vectors are accepted; any disagreement between header, vector bytes and
// item metadata is an IndexCorruptError.
func (ix *Index) Load(dir string) error {
	if ix.built {
		return fmt.Errorf("index is immutable once built")
	}

	headerBytes, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return fmt.Errorf("read bundle header: %w", err)
	}
	var header bundleHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return &IndexCorruptError{Reason: fmt.Sprintf("unreadable header: %v", err)}
	}
	if header.Dimension <= 0 && header.Count > 0 {
		return &IndexCorruptError{Reason: fmt.Sprintf("invalid dimension %d", header.Dimension)}
	}
	if header.Count < 0 {
		return &IndexCorruptError{Reason: fmt.Sprintf("invalid count %d", header.Count)}
	}

	vecBytes, err := os.ReadFile(filepath.Join(dir, vectorsFile))
	if err != nil {
		return fmt.Errorf("read bundle vectors: %w", err)
	}
	want := header.Count * header.Dimension * 4
	if len(vecBytes) != want {
		return &IndexCorruptError{
			Reason: fmt.Sprintf("vector data is %d bytes, header implies %d (dimension %d x count %d)",
				len(vecBytes), want, header.Dimension, header.Count),
		}
	}

	itemBytes, err := os.ReadFile(filepath.Join(dir, itemsFile))
	if err != nil {
		return fmt.Errorf("read bundle items: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(itemBytes, &items); err != nil {
		return &IndexCorruptError{Reason: fmt.Sprintf("unreadable items: %v", err)}
	}
	if len(items) != header.Count {
		return &IndexCorruptError{
			Reason: fmt.Sprintf("item count %d does not match header count %d", len(items), header.Count),
		}
	}

	vectors := make([][]float32, header.Count)
	for i := 0; i < header.Count; i++ {
		vec := make([]float32, header.Dimension)
		for j := 0; j < header.Dimension; j++ {
			offset := (i*header.Dimension + j) * 4
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(vecBytes[offset : offset+4]))
		}
		vectors[i] = vec
	}

	ix.dimension = header.Dimension
	ix.items = items
	ix.vectors = vectors
	ix.built = true
	return nil
}
