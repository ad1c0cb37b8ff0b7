package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"overmind/internal/model"
)

// Replay plays recorded games back. Recordings are grouped by the opponent
// race in their header; game i against race r plays recording i mod n of r.
type Replay struct {
	dir string
	log zerolog.Logger

	once  sync.Once
	err   error
	index map[model.Race][]string
}

func NewReplay(dir string, log zerolog.Logger) *Replay {
	return &Replay{dir: dir, log: log}
}

func (r *Replay) load() {
	r.index = make(map[model.Race][]string)
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.err = fmt.Errorf("read replay dir: %w", err)
		return
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && isRecording(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(r.dir, name)
		rec, err := openRecording(path)
		if err != nil {
			r.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable recording")
			continue
		}
		race := rec.header.OpponentRace
		_ = rec.Close()
		if !race.Playable() {
			r.log.Warn().Str("path", path).Msg("recording has no concrete opponent race")
			continue
		}
		r.index[race] = append(r.index[race], path)
	}
}

// Recordings lists the recording paths available for race.
func (r *Replay) Recordings(race model.Race) ([]string, error) {
	r.once.Do(r.load)
	if r.err != nil {
		return nil, r.err
	}
	return append([]string(nil), r.index[race]...), nil
}

func (r *Replay) Start(ctx context.Context, spec GameSpec) (Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := r.Recordings(spec.OpponentRace)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no recordings against %s in %s", spec.OpponentRace, r.dir)
	}
	path := paths[spec.Index%len(paths)]
	rec, err := openRecording(path)
	if err != nil {
		return nil, err
	}
	info := rec.header.GameInfo
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	if !info.OwnRace.Playable() {
		info.OwnRace = spec.OwnRace
	}
	if info.Difficulty == "" {
		info.Difficulty = spec.Difficulty
	}
	r.log.Debug().Str("path", path).Str("game", info.ID).Msg("replaying recording")
	return &replayGame{rec: rec, info: info}, nil
}

type replayGame struct {
	rec  *recordingReader
	info GameInfo
	done bool
}

func (g *replayGame) Info() GameInfo {
	return g.info
}

func (g *replayGame) Next(ctx context.Context) (model.Snapshot, bool, error) {
	if g.done {
		return model.Snapshot{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, false, err
	}
	snapshot, ok, err := g.rec.next()
	if err != nil || !ok {
		g.done = true
	}
	return snapshot, ok, err
}

func (g *replayGame) Result() model.Result {
	if !g.done || g.rec.header.Result == "" {
		return model.ResultUndecided
	}
	return g.rec.header.Result
}

func (g *replayGame) Close() error {
	return g.rec.Close()
}
