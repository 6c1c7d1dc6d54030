package web

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/gomeboy/pkg/display"
)

const (
	framePixels = display.FrameWidth * display.FrameHeight
	frameSize   = framePixels * 4
	// patchUnit is the number of dirty pixels per step of the patch
	// ratio, a ratio of 5 always patches.
	patchUnit = framePixels / 5
	cacheSize = 64
)

// Player turns emulator frames into messages for the clients. Only
// frames that differ from the previous one are sent, either whole or
// as a patch of the dirty pixels, and repeated messages are replaced
// by an index into a cache that every client mirrors.
type Player struct {
	hub                    *hub
	patchCache, frameCache *cache
	currentFrame           []byte
	dirtiedPixels          []byte
	framesSkipped          uint32
}

func newPlayer(h *hub) *Player {
	return &Player{
		hub:           h,
		patchCache:    newCache(cacheSize),
		frameCache:    newCache(cacheSize),
		currentFrame:  make([]byte, frameSize),
		dirtiedPixels: make([]byte, frameSize),
	}
}

// frame encodes f and publishes the resulting messages.
func (p *Player) frame(f []byte) error {
	msgs, err := p.encode(f, p.hub.snapshot())
	if err != nil {
		return err
	}
	if len(msgs) > 0 {
		p.hub.keepFrame(p.currentFrame)
	}
	for _, msg := range msgs {
		p.hub.publish(msg)
	}
	return nil
}

// encode diffs f against the previous frame and returns the messages
// describing it.
func (p *Player) encode(f []byte, s settings) ([][]byte, error) {
	dirty := 0
	for i := 0; i+3 < len(f) && i+3 < frameSize; i += 4 {
		if f[i] != p.currentFrame[i] || f[i+1] != p.currentFrame[i+1] || f[i+2] != p.currentFrame[i+2] {
			copy(p.dirtiedPixels[i:i+3], f[i:i+3])
			p.dirtiedPixels[i+3] = 0xFF
			dirty++
		} else {
			p.dirtiedPixels[i+3] = 0
		}
	}

	if dirty == 0 && s.frameSkipping {
		p.framesSkipped++
		return nil, nil
	}

	var msgs [][]byte
	if p.framesSkipped > 0 {
		msgs = append(msgs, binary.LittleEndian.AppendUint32([]byte{FrameSkip}, p.framesSkipped))
		p.framesSkipped = 0
	}

	copy(p.currentFrame, f)

	typ, buffer, c := Frame, p.currentFrame, p.frameCache
	if s.framePatching && dirty < s.framePatchRatio*patchUnit {
		typ, buffer, c = FramePatch, p.dirtiedPixels, p.patchCache
	}

	output := buffer
	if s.compression {
		var err error
		if output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{Quality: s.compressionLevel}); err != nil {
			return nil, err
		}
	} else {
		output = append([]byte(nil), buffer...)
	}

	hash := xxhash.Sum64(output)

	c.Lock()
	defer c.Unlock()
	if idx := c.index(hash); idx != -1 {
		cached := PatchCache
		if typ == Frame {
			cached = FrameCache
		}
		return append(msgs, binary.LittleEndian.AppendUint16([]byte{cached}, uint16(idx))), nil
	}

	idx := c.add(hash, output)
	msg := binary.LittleEndian.AppendUint16([]byte{typ}, uint16(idx))
	return append(msgs, append(msg, output...)), nil
}

// sync returns the messages that seed a new client's caches.
func (p *Player) sync() [][]byte {
	var msgs [][]byte
	for _, s := range []struct {
		typ Type
		c   *cache
	}{{FrameCacheSync, p.frameCache}, {PatchCacheSync, p.patchCache}} {
		s.c.RLock()
		data := s.c.sync()
		s.c.RUnlock()
		if len(data) > 0 {
			msgs = append(msgs, append([]byte{s.typ}, data...))
		}
	}
	return msgs
}
