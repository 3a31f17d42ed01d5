package ecs

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

type debugState struct {
	Initialized    bool                 `json:"initialized"`
	Delta          float64              `json:"delta"`
	Entities       debugEntityCounters  `json:"entities"`
	ComponentTypes []debugComponentType `json:"componentTypes"`
	Managers       []string             `json:"managers"`
	Systems        []debugSystem        `json:"systems"`
}

type debugEntityCounters struct {
	Active  int   `json:"active"`
	Created int64 `json:"created"`
	Added   int64 `json:"added"`
	Deleted int64 `json:"deleted"`
}

type debugComponentType struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type debugSystem struct {
	Type    string `json:"type"`
	Index   int    `json:"index"`
	Passive bool   `json:"passive"`
	Actives []int  `json:"actives"`
}

// DebugState returns a JSON snapshot of the world's counters, component types, managers and
// systems with the ids of their active entities.
func (w *World) DebugState() ([]byte, error) {
	em := w.entityManager
	state := debugState{
		Initialized: w.initialized,
		Delta:       w.delta,
		Entities: debugEntityCounters{
			Active:  em.ActiveEntityCount(),
			Created: em.TotalCreated(),
			Added:   em.TotalAdded(),
			Deleted: em.TotalDeleted(),
		},
		ComponentTypes: make([]debugComponentType, 0, len(w.componentTypes.ordered)),
		Managers:       make([]string, 0, w.managers.Size()),
		Systems:        make([]debugSystem, 0, w.systems.Size()),
	}

	for _, t := range w.componentTypes.ordered {
		state.ComponentTypes = append(state.ComponentTypes, debugComponentType{Index: t.Index(), Name: t.Name()})
	}
	for i := range w.managers.Size() {
		state.Managers = append(state.Managers, reflect.TypeOf(w.managers.Get(i)).String())
	}
	for i := range w.systems.Size() {
		es := w.systems.Get(i).entitySystem()
		actives := make([]int, es.actives.Size())
		for j := range es.actives.Size() {
			actives[j] = es.actives.Get(j).ID()
		}
		state.Systems = append(state.Systems, debugSystem{
			Type:    es.systemType,
			Index:   es.systemIndex,
			Passive: es.passive,
			Actives: actives,
		})
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal debug state")
	}
	return data, nil
}
