package web

// Event is the second byte of a settings message sent by a client,
// selecting the hub setting to change.
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
	ClientStatus
	FramePatchingRatio
)

const (
	// Settings prefixes a settings message: [Settings, Event, value].
	Settings = 10
	// Closing is sent by a client that is about to disconnect.
	Closing = 255
)

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame is a full frame: [Frame, index lo, index hi, data...]
	// where data is stored at index of the client's frame cache.
	Frame Type = iota
	// FramePatch holds only the pixels that changed, the rest have
	// an alpha of 0: [FramePatch, index lo, index hi, data...].
	FramePatch
	// FrameSkip reports frames that did not change: [FrameSkip, count (u32)].
	FrameSkip
	// ClientInfo reports the hub settings: [ClientInfo, ClientStatus, info, level, ratio].
	ClientInfo
	// PatchCache repeats a cached patch: [PatchCache, index lo, index hi].
	PatchCache
	// PatchCacheSync seeds a new client's patch cache.
	PatchCacheSync
	// FrameCache repeats a cached frame: [FrameCache, index lo, index hi].
	FrameCache
	// FrameCacheSync seeds a new client's frame cache.
	FrameCacheSync
	// FrameSync is the current frame, sent to a new client.
	FrameSync
	// ClientClosing reports a disconnected client: [ClientClosing, id].
	ClientClosing
	// ServerInfo reports the latency of each client: [ServerInfo, (id, ms (u16))...].
	ServerInfo
	// PlayerIdentify tells a client it now controls the joypad.
	PlayerIdentify
	// WindowTitle carries the emulator title: [WindowTitle, text...].
	WindowTitle
)
