package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	metadataFile     = "metadata.json"
	distributionFile = "distribution.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one factoring run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Command   string             `json:"command"`
	N         int                `json:"n"`
	Base      int                `json:"base"`
	Seed      uint64             `json:"seed"`
	RegisterA int                `json:"register_a"`
	RegisterB int                `json:"register_b"`
	Attempts  int                `json:"attempts"`
	Outcome   string             `json:"outcome"`
	Factors   [2]int             `json:"factors"`
	Period    int                `json:"period"`
	C         int                `json:"c"`
	Y         int                `json:"y"`
	Metrics   map[string]float64 `json:"metrics"`
	Timestamp time.Time          `json:"timestamp"`
}

// Save writes meta and the register-A distribution under a new run ID and
// returns the ID.
func (s *Store) Save(meta RunMetadata, distribution []float64) (string, error) {
	meta.ID = uuid.New().String()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, distributionFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"c", "probability"}); err != nil {
		return "", err
	}
	for c, p := range distribution {
		row := []string{strconv.Itoa(c), strconv.FormatFloat(p, 'g', 12, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadDistribution reads the register-A distribution saved with a run.
func (s *Store) LoadDistribution(runID string) ([]float64, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, distributionFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	dist := make([]float64, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 fields, got %d", distributionFile, i+2, len(record))
		}
		c, err := strconv.Atoi(record[0])
		if err != nil || c < 0 || c >= len(dist) {
			return nil, fmt.Errorf("%s line %d: bad outcome %q", distributionFile, i+2, record[0])
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", distributionFile, i+2, err)
		}
		dist[c] = p
	}

	return dist, nil
}
