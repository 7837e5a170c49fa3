package instance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/optpack/optpack/solver"
)

// Load reads an instance file, dispatching on extension: .json, .yaml or
// .yml, and .csv. The loaded instance is validated before being returned.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".csv":
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("%w: unknown instance format %q (expected .json, .yaml, or .csv)",
			solver.ErrInvalidArgument, filepath.Ext(path))
	}
}

// fileInstance is the on-disk shape shared by the JSON and YAML formats.
// num_items is optional; when present it must match the array lengths.
type fileInstance struct {
	NumItems *int    `json:"num_items" yaml:"num_items"`
	Capacity int64   `json:"capacity" yaml:"capacity"`
	Weights  []int64 `json:"weights" yaml:"weights"`
	Values   []int64 `json:"values" yaml:"values"`
}

// LoadJSON decodes an instance document:
//
//	{"num_items": 3, "capacity": 10, "weights": [2,3,4], "values": [5,6,7]}
func LoadJSON(r io.Reader) (*Instance, error) {
	var doc fileInstance
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode instance JSON: %w", err)
	}
	return doc.toInstance()
}

// LoadYAML decodes the same document shape as LoadJSON, in YAML.
func LoadYAML(r io.Reader) (*Instance, error) {
	var doc fileInstance
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode instance YAML: %w", err)
	}
	return doc.toInstance()
}

// LoadCSV decodes one item per row as "weight,value", with capacity taken
// from a leading "capacity,<n>" row. A "weight,value" header row is
// skipped when present.
func LoadCSV(r io.Reader) (*Instance, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read instance CSV: %w", err)
	}

	in := &Instance{Capacity: -1}
	for lineNo, rec := range records {
		if len(rec) != 2 {
			return nil, fmt.Errorf("%w: CSV row %d has %d fields, want 2",
				solver.ErrInvalidArgument, lineNo+1, len(rec))
		}
		first := strings.TrimSpace(strings.ToLower(rec[0]))
		if lineNo == 0 && first == "weight" {
			continue // header
		}
		if first == "capacity" {
			c, err := parseInt32(rec[1])
			if err != nil {
				return nil, fmt.Errorf("%w: CSV row %d: bad capacity %q",
					solver.ErrInvalidArgument, lineNo+1, rec[1])
			}
			in.Capacity = c
			continue
		}

		w, err := parseInt32(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: CSV row %d: bad weight %q",
				solver.ErrInvalidArgument, lineNo+1, rec[0])
		}
		v, err := parseInt32(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: CSV row %d: bad value %q",
				solver.ErrInvalidArgument, lineNo+1, rec[1])
		}
		in.Weights = append(in.Weights, w)
		in.Values = append(in.Values, v)
	}

	if in.Capacity < 0 {
		return nil, fmt.Errorf("%w: CSV instance missing capacity row", solver.ErrInvalidArgument)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (doc *fileInstance) toInstance() (*Instance, error) {
	if doc.NumItems != nil && *doc.NumItems != len(doc.Weights) {
		return nil, fmt.Errorf("%w: num_items is %d but %d weights given",
			solver.ErrInvalidArgument, *doc.NumItems, len(doc.Weights))
	}

	in := &Instance{
		Weights: make([]int32, len(doc.Weights)),
		Values:  make([]int32, len(doc.Values)),
	}
	var err error
	if in.Capacity, err = toInt32(doc.Capacity); err != nil {
		return nil, fmt.Errorf("%w: capacity %d", solver.ErrOutOfRange, doc.Capacity)
	}
	for i, w := range doc.Weights {
		if in.Weights[i], err = toInt32(w); err != nil {
			return nil, fmt.Errorf("%w: weight %d at index %d", solver.ErrOutOfRange, w, i)
		}
	}
	for i, v := range doc.Values {
		if in.Values[i], err = toInt32(v); err != nil {
			return nil, fmt.Errorf("%w: value %d at index %d", solver.ErrOutOfRange, v, i)
		}
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func toInt32(v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, solver.ErrOutOfRange
	}
	return int32(v), nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
