package features

import (
	"overmind/internal/model"
	"overmind/internal/taxonomy"
)

// WorkerAllocation splits the own worker count by activity. Other covers
// workers that are moving, scouting, building or fighting.
type WorkerAllocation struct {
	Total   int `json:"total"`
	Idle    int `json:"idle"`
	Mineral int `json:"mineral"`
	Vespene int `json:"vespene"`
	Other   int `json:"other"`
}

func Workers(units []model.Unit, tx *taxonomy.Taxonomy) WorkerAllocation {
	var (
		a        WorkerAllocation
		gasCount int
	)
	for _, unit := range units {
		switch {
		case tx.IsWorker(unit.Name):
			a.Total++
			if unit.Idle {
				a.Idle++
			}
		case tx.IsGasBuilding(unit.Name):
			gasCount++
			a.Vespene += unit.AssignedHarvesters
		case tx.IsTownHall(unit.Name):
			a.Mineral += unit.AssignedHarvesters
		}
	}
	// Town halls count a worker walking gas back as a mineral harvester too.
	if a.Total < a.Mineral+a.Vespene {
		a.Mineral -= gasCount
		if a.Mineral < 0 {
			a.Mineral = 0
		}
	}
	a.Other = a.Total - a.Idle - a.Mineral - a.Vespene
	if a.Other < 0 {
		a.Other = 0
	}
	return a
}
