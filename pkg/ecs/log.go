package ecs

import (
	"reflect"

	"github.com/rs/zerolog"
)

func loadComponentsToEvent(event *zerolog.Event, w *World) *zerolog.Event {
	types := w.ComponentTypes()
	event.Int("total_components", len(types))
	arr := zerolog.Arr()
	for _, t := range types {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", t.Index()).
			Str("component_name", t.Name()))
	}
	return event.Array("components", arr)
}

func loadSystemsToEvent(event *zerolog.Event, w *World) *zerolog.Event {
	event.Int("total_systems", w.systems.Size())
	arr := zerolog.Arr()
	for i := range w.systems.Size() {
		es := w.systems.Get(i).entitySystem()
		arr = arr.Dict(zerolog.Dict().
			Str("system_type", es.systemType).
			Int("system_index", es.systemIndex).
			Bool("passive", es.passive).
			Int("actives", es.actives.Size()))
	}
	return event.Array("systems", arr)
}

func loadManagersToEvent(event *zerolog.Event, w *World) *zerolog.Event {
	arr := zerolog.Arr()
	for i := range w.managers.Size() {
		arr = arr.Str(reflect.TypeOf(w.managers.Get(i)).String())
	}
	return event.Array("managers", arr)
}

// LogWorld logs the registered component types, managers and systems of the world at level.
func (w *World) LogWorld(level zerolog.Level) {
	event := w.logger.WithLevel(level)
	event = loadComponentsToEvent(event, w)
	event = loadManagersToEvent(event, w)
	event = loadSystemsToEvent(event, w)
	event.Msg("world")
}

// LogEntity logs the component types held by e at level.
func (w *World) LogEntity(e *Entity, level zerolog.Level) {
	arr := zerolog.Arr()
	bits := e.ComponentBits()
	for i := bits.NextSetBit(0); i >= 0; i = bits.NextSetBit(i + 1) {
		t := w.componentTypes.ordered[i]
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", t.Index()).
			Str("component_name", t.Name()))
	}
	w.logger.WithLevel(level).
		Int("entity_id", e.ID()).
		Str("entity_uuid", e.UUID().String()).
		Array("components", arr).
		Msg("entity")
}
