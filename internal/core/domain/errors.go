package domain

import "go.trai.ch/zerr"

var (
	// ErrPostTwice is returned when a subtree is dispatched while a worker still owns it.
	ErrPostTwice = zerr.New("subtree posted twice")

	// ErrIllegalTransition is returned when a subtree is moved along an edge its lifecycle does not allow.
	ErrIllegalTransition = zerr.New("illegal cache state transition")

	// ErrMissingNode is returned when a node references an id that is not in the frame.
	ErrMissingNode = zerr.New("missing node")

	// ErrParentMismatch is returned when a child does not name the node listing it as its parent.
	ErrParentMismatch = zerr.New("child names a different parent")

	// ErrCycleDetected is returned when the node tree contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected in node tree")

	// ErrPoolClosed is returned when work is submitted to a stopped worker pool.
	ErrPoolClosed = zerr.New("worker pool closed")

	// ErrPoolSaturated is returned when every worker slot is busy.
	ErrPoolSaturated = zerr.New("worker pool saturated")

	// ErrRenderFailed is returned when a worker cannot produce a cache surface.
	ErrRenderFailed = zerr.New("failed to render cache surface")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrWatcherFailed is returned when the config file cannot be watched.
	ErrWatcherFailed = zerr.New("failed to watch config file")

	// ErrScriptReadFailed is returned when a scene script cannot be read.
	ErrScriptReadFailed = zerr.New("failed to read scene script")

	// ErrScriptInvalid is returned when a scene script is malformed.
	ErrScriptInvalid = zerr.New("invalid scene script")

	// ErrStoreCreateFailed is returned when the report store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create report store directory")

	// ErrStoreReadFailed is returned when a stored report cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read report")

	// ErrStoreUnmarshalFailed is returned when a stored report cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal report")

	// ErrStoreMarshalFailed is returned when a report cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal report")

	// ErrStoreWriteFailed is returned when a report cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write report")

	// ErrStoreInvalidDigest is returned when a report address is malformed.
	ErrStoreInvalidDigest = zerr.New("invalid report digest")

	// ErrInspectorListen is returned when the inspector socket cannot be opened.
	ErrInspectorListen = zerr.New("failed to listen on inspector socket")

	// ErrInspectorUnavailable is returned when no inspector answers on the socket.
	ErrInspectorUnavailable = zerr.New("inspector unavailable")

	// ErrReplayFailed is returned when a replay stops before its last frame.
	ErrReplayFailed = zerr.New("replay failed")

	// ErrRunNotFound is returned when no stored run matches a digest.
	ErrRunNotFound = zerr.New("run not found")
)
