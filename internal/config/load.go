package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file mirrors the YAML layout. Pointer fields distinguish "absent" from zero.
type file struct {
	ViewingDistance  *int     `yaml:"viewing_distance"`
	MaxChunkVBOs     *int     `yaml:"max_chunk_vbos"`
	CacheSize        *int     `yaml:"cache_size"`
	DebugCollision   *bool    `yaml:"debug_collision"`
	Wireframe        *bool    `yaml:"wireframe"`
	DayLengthSeconds *float64 `yaml:"day_length_seconds"`
	MeshWorkers      *int     `yaml:"mesh_workers"`
	MeshQueueSize    *int     `yaml:"mesh_queue_size"`
	FPSLimit         *int     `yaml:"fps_limit"`
	StatsLogDir      *string  `yaml:"stats_log_dir"`
	Audio            *bool    `yaml:"audio"`
	Window           *struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`
	WorldGen *struct {
		Seed     *int64 `yaml:"seed"`
		SeaLevel *int   `yaml:"sea_level"`
	} `yaml:"world_gen"`
}

// Load reads a YAML settings file on top of Default. A missing file yields
// the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(raw, s); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Parse applies the YAML document in raw onto s.
func Parse(raw []byte, s *Settings) error {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return err
	}
	if f.DayLengthSeconds != nil && *f.DayLengthSeconds <= 0 {
		return fmt.Errorf("day_length_seconds must be positive, got %v", *f.DayLengthSeconds)
	}

	if f.ViewingDistance != nil {
		s.SetViewingDistance(*f.ViewingDistance)
	}
	if f.MaxChunkVBOs != nil {
		s.SetMaxChunkVBOs(*f.MaxChunkVBOs)
	}
	if f.CacheSize != nil {
		s.SetCacheSize(*f.CacheSize)
	}
	if f.DebugCollision != nil {
		s.SetDebugCollision(*f.DebugCollision)
	}
	if f.Wireframe != nil {
		s.SetWireframe(*f.Wireframe)
	}
	if f.DayLengthSeconds != nil {
		s.SetDayLengthSeconds(*f.DayLengthSeconds)
	}
	if f.MeshWorkers != nil {
		s.SetMeshWorkers(*f.MeshWorkers)
	}
	if f.MeshQueueSize != nil {
		s.SetMeshQueueSize(*f.MeshQueueSize)
	}
	if f.FPSLimit != nil {
		s.SetFPSLimit(*f.FPSLimit)
	}
	if f.StatsLogDir != nil {
		s.SetStatsLogDir(*f.StatsLogDir)
	}
	if f.Audio != nil {
		s.SetAudio(*f.Audio)
	}
	if f.Window != nil {
		s.SetWindowSize(f.Window.Width, f.Window.Height)
	}
	if f.WorldGen != nil {
		if f.WorldGen.Seed != nil {
			s.WorldGen.SetSeed(*f.WorldGen.Seed)
		}
		if f.WorldGen.SeaLevel != nil {
			s.WorldGen.SetSeaLevel(*f.WorldGen.SeaLevel)
		}
	}
	return nil
}
