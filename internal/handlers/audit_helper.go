package handlers

import (
	"strconv"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	"github.com/BruksfildServices01/groomer-scheduler/internal/session"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

func writeAudit(
	d Auditor,
	actor *session.Actor,
	action string,
	entity string,
	entityID string,
	meta any,
) {
	if d == nil {
		return
	}

	ev := audit.Event{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	}
	if actor != nil {
		userID := actor.UserID
		ev.ActorID = &userID
		ev.ActorRole = actor.Role
	}

	d.Dispatch(ev)
}

func uintID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
