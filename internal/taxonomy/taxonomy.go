// Package taxonomy maps engine unit and building names onto the fixed,
// per-race categories used for feature vectors and fitness scoring.
package taxonomy

import (
	"fmt"

	"overmind/internal/model"
)

// RestCategory is the catch-all feature category for unrecognized names.
const RestCategory = "rest"

// Bucket is a fitness class. Buckets are checked in declaration order, so a
// name listed in two buckets scores with the earlier one.
type Bucket int

const (
	BucketDefensive Bucket = iota
	BucketProduction
	BucketUpgrade
	BucketTechnology
	BucketBasic
	BucketAdvanced
	BucketOther
	BucketArmy
	BucketWorker
	bucketCount
)

var bucketNames = [...]string{"defensive", "production", "upgrade", "technology", "basic", "advanced", "other", "army", "worker"}

var bucketWeights = [...]int{4, 2, 2, 3, 1, 2, 3, 1, 1}

func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return "unknown"
	}
	return bucketNames[b]
}

// Weight is the integer fitness weight of one unit in the bucket.
func (b Bucket) Weight() int {
	if b < 0 || b >= bucketCount {
		return 0
	}
	return bucketWeights[b]
}

// Buckets lists every bucket in precedence order.
func Buckets() []Bucket {
	out := make([]Bucket, 0, bucketCount)
	for b := Bucket(0); b < bucketCount; b++ {
		out = append(out, b)
	}
	return out
}

type Taxonomy struct {
	race       model.Race
	categories []string
	index      map[string]int
	aliases    map[string]string
	ignored    map[string]struct{}

	fitnessIgnored map[string]struct{}
	buckets        map[string]Bucket

	workers   map[string]struct{}
	townHalls map[string]struct{}
	gas       map[string]struct{}
	workerCat int
}

// spec is the literal form a race table is declared in.
type spec struct {
	categories     []string
	aliases        map[string]string
	ignored        []string
	fitnessIgnored []string
	buckets        [bucketCount][]string
	workers        []string
	townHalls      []string
	gas            []string
}

func build(race model.Race, s spec) *Taxonomy {
	t := &Taxonomy{
		race:           race,
		categories:     append(append([]string(nil), s.categories...), RestCategory),
		index:          make(map[string]int, len(s.categories)+1),
		aliases:        s.aliases,
		ignored:        toSet(s.ignored),
		fitnessIgnored: toSet(s.fitnessIgnored),
		buckets:        make(map[string]Bucket),
		workers:        toSet(s.workers),
		townHalls:      toSet(s.townHalls),
		gas:            toSet(s.gas),
		workerCat:      -1,
	}
	for i, name := range t.categories {
		t.index[name] = i
	}
	for b := Bucket(0); b < bucketCount; b++ {
		for _, name := range s.buckets[b] {
			if _, exists := t.buckets[name]; !exists {
				t.buckets[name] = b
			}
		}
	}
	for i, name := range t.categories {
		if _, ok := t.workers[name]; ok {
			t.workerCat = i
			break
		}
	}
	return t
}

func toSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

var tables = map[model.Race]*Taxonomy{
	model.RaceTerran:  build(model.RaceTerran, terran),
	model.RaceZerg:    build(model.RaceZerg, zerg),
	model.RaceProtoss: build(model.RaceProtoss, protoss),
}

// For returns the taxonomy of a concrete race.
func For(race model.Race) (*Taxonomy, error) {
	t, ok := tables[race]
	if !ok {
		return nil, fmt.Errorf("no unit taxonomy for race %s", race)
	}
	return t, nil
}

// MustFor is For for package-level tables and tests.
func MustFor(race model.Race) *Taxonomy {
	t, err := For(race)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Taxonomy) Race() model.Race {
	return t.race
}

// Categories returns the ordered feature categories, catch-all last.
func (t *Taxonomy) Categories() []string {
	return append([]string(nil), t.categories...)
}

func (t *Taxonomy) Len() int {
	return len(t.categories)
}

func (t *Taxonomy) RestIndex() int {
	return len(t.categories) - 1
}

// WorkerCategory is the index of the worker category, or -1.
func (t *Taxonomy) WorkerCategory() int {
	return t.workerCat
}

// Ignored reports whether name is excluded from feature counts.
func (t *Taxonomy) Ignored(name string) bool {
	_, ok := t.ignored[name]
	return ok
}

// Resolve maps a unit name onto its feature category. Unknown names resolve to
// the catch-all category with known=false.
func (t *Taxonomy) Resolve(name string) (category int, known bool) {
	if i, ok := t.index[name]; ok && name != RestCategory {
		return i, true
	}
	if canonical, ok := t.aliases[name]; ok {
		if i, ok := t.index[canonical]; ok {
			return i, true
		}
	}
	return t.RestIndex(), false
}

// Classify maps a unit name onto its fitness bucket. Ignored names return
// ok=true with skip=true; unknown names return ok=false.
func (t *Taxonomy) Classify(name string) (bucket Bucket, skip bool, ok bool) {
	if _, ignored := t.fitnessIgnored[name]; ignored {
		return 0, true, true
	}
	b, found := t.buckets[name]
	if !found {
		return 0, false, false
	}
	return b, false, true
}

func (t *Taxonomy) IsWorker(name string) bool {
	_, ok := t.workers[name]
	return ok
}

func (t *Taxonomy) IsTownHall(name string) bool {
	_, ok := t.townHalls[name]
	return ok
}

func (t *Taxonomy) IsGasBuilding(name string) bool {
	_, ok := t.gas[name]
	return ok
}
