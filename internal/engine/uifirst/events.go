package uifirst

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
)

const (
	eventStartTimeout = 500 * time.Millisecond
	eventStopTimeout  = 150 * time.Millisecond
	// eventDisableGap is how much older than an app event a leash window's
	// UI-first start must be before the event disables it.
	eventDisableGap = 100 * time.Millisecond
)

const (
	sceneListFling   = "APP_LIST_FLING"
	scenePageSwitch  = "ABILITY_OR_PAGE_SWITCH"
	cardNameFragment = "ArkTSCardNode"
)

// cardSkipFirstWaitScenes lets a freshly enabled card present without
// waiting for its first cached frame.
var cardSkipFirstWaitScenes = []string{
	"INTO_HOME_ANI",
	"FINGERPRINT_UNLOCK_ANI",
	"SCREEN_OFF_FINGERPRINT_UNLOCK_ANI",
	"PASSWORD_UNLOCK_ANI",
	"FACIAL_FLING_UNLOCK_ANI",
	"FACIAL_UNLOCK_ANI",
	"APP_SWIPER_SCROLL",
	"APP_SWIPER_FLING",
	"LAUNCHER_SCROLL",
	"SCROLL_2_AA",
}

type sceneEvent struct {
	uniqueID  int64
	appPid    int32
	sceneID   string
	startTime time.Time
	stopTime  time.Time
	disabled  map[domain.NodeID]struct{}
}

// eventTracker keeps the app scene events that are still relevant to the
// current frame.
type eventTracker struct {
	events        []*sceneEvent
	skipFirstWait bool
}

func newEventTracker() *eventTracker {
	return &eventTracker{}
}

// OnEventResponse records the start of an app scene. Disable marks of the
// events already tracked are forgotten.
func (e *eventTracker) OnEventResponse(ev domain.SceneEvent, now time.Time) {
	for _, existing := range e.events {
		clear(existing.disabled)
	}
	e.events = append(e.events, &sceneEvent{
		uniqueID:  ev.UniqueID,
		appPid:    ev.AppPid,
		sceneID:   ev.SceneID,
		startTime: now,
		disabled:  make(map[domain.NodeID]struct{}),
	})
	e.skipFirstWait = canSkipFirstWait(e.events)
}

// OnEventComplete stamps the stop time. The event lingers for
// eventStopTimeout so the animation it started can settle.
func (e *eventTracker) OnEventComplete(ev domain.SceneEvent, now time.Time) {
	for _, existing := range e.events {
		if existing.uniqueID == ev.UniqueID && existing.sceneID == ev.SceneID {
			existing.stopTime = now
			return
		}
	}
}

// Prepare expires stale events. It runs once at the start of a frame.
func (e *eventTracker) Prepare(now time.Time) {
	kept := e.events[:0]
	for _, ev := range e.events {
		if !ev.stopTime.IsZero() && now.After(ev.stopTime) && now.Sub(ev.stopTime) > eventStopTimeout {
			continue
		}
		if now.After(ev.startTime) && now.Sub(ev.startTime) > eventStartTimeout {
			continue
		}
		kept = append(kept, ev)
	}
	clear(e.events[len(kept):])
	e.events = kept
	e.skipFirstWait = canSkipFirstWait(e.events)
}

// Len returns the number of live events.
func (e *eventTracker) Len() int {
	return len(e.events)
}

// SkipFirstWait reports whether a live event lets cards skip the first-frame gate.
func (e *eventTracker) SkipFirstWait() bool {
	return e.skipFirstWait
}

// DisablesLeash reports whether an app list fling or page switch owned by one
// of pids started well after the window enabled UI-first. The decision sticks
// to the event until a newer event arrives.
func (e *eventTracker) DisablesLeash(id domain.NodeID, pids []int32, start time.Time) bool {
	if len(pids) == 0 {
		return false
	}
	for _, ev := range e.events {
		if _, ok := ev.disabled[id]; ok {
			return true
		}
		if start.IsZero() || !start.Before(ev.startTime.Add(-eventDisableGap)) {
			continue
		}
		if !slices.Contains(pids, ev.appPid) {
			continue
		}
		if strings.Contains(ev.sceneID, sceneListFling) || strings.Contains(ev.sceneID, scenePageSwitch) {
			ev.disabled[id] = struct{}{}
			return true
		}
	}
	return false
}

func canSkipFirstWait(events []*sceneEvent) bool {
	for _, ev := range events {
		if slices.Contains(cardSkipFirstWaitScenes, ev.sceneID) {
			return true
		}
	}
	return false
}
