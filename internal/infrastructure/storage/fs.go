package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"svw.info/powerline/internal/domain"
)

// Format selects the on-disk encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// FS writes levels as files bucketed by difficulty: <dir>/<difficulty>/<id>.<ext>.
type FS struct {
	dir    string
	format Format
}

func NewFS(dir string, format Format) *FS {
	if format == "" {
		format = JSON
	}
	return &FS{dir: dir, format: format}
}

var buckets = []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert}

func (s *FS) pathFor(id int, d domain.Difficulty) string {
	return filepath.Join(s.dir, d.String(), strconv.Itoa(id)+"."+string(s.format))
}

func (s *FS) Save(ctx context.Context, l *domain.Level) error {
	if l == nil || l.ID <= 0 {
		return errors.New("invalid level: missing id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	target := s.pathFor(l.ID, l.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.encode(f, l)
}

func (s *FS) encode(w io.Writer, l *domain.Level) error {
	if s.format == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func decode(name string, data []byte, out *domain.Level) error {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}

// List returns metadata for every exported level, ordered by id.
func (s *FS) List(ctx context.Context) ([]domain.LevelMeta, error) {
	var out []domain.LevelMeta
	for _, b := range buckets {
		dir := filepath.Join(s.dir, b.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			switch filepath.Ext(name) {
			case ".json", ".yaml", ".yml":
			default:
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			var lvl domain.Level
			if err := decode(name, data, &lvl); err != nil || lvl.ID == 0 {
				continue
			}
			out = append(out, lvl.Meta())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
