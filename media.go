package nwkit

import (
	"fmt"
	"strings"

	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// TrackKind selects which tracks of a stream to stop. The zero value is
// TrackAll.
type TrackKind int

const (
	TrackAll TrackKind = iota
	TrackVideo
	TrackAudio
)

func (k TrackKind) String() string {
	switch k {
	case TrackVideo:
		return "Video"
	case TrackAudio:
		return "Audio"
	case TrackAll:
		return "All"
	}
	return fmt.Sprintf("TrackKind(%d)", int(k))
}

// ParseTrackKind parses the String form of a kind, ignoring case.
func ParseTrackKind(s string) (TrackKind, error) {
	switch strings.ToLower(s) {
	case "video":
		return TrackVideo, nil
	case "audio":
		return TrackAudio, nil
	case "all":
		return TrackAll, nil
	}
	return 0, fmt.Errorf("unknown track kind %q", s)
}

func (k TrackKind) selects(kind string) bool {
	switch k {
	case TrackAll:
		return true
	case TrackVideo:
		return kind == "video"
	case TrackAudio:
		return kind == "audio"
	}
	return false
}

// StopTracks stops the tracks of stream selected by kind and returns how many
// it stopped. A nil stream stops nothing. Tracks the shell could not resolve
// are left alone.
func StopTracks(stream MediaStream, kind TrackKind) int {
	if stream == nil {
		return 0
	}

	stopped := 0
	for _, track := range stream.GetTracks() {
		if track == nil {
			continue
		}
		if kind.selects(track.Kind()) {
			track.Stop()
			stopped++
		}
	}
	return stopped
}

// SetMediaStream makes s the current stream. A nil s clears it.
func (a *Application) SetMediaStream(s MediaStream) error {
	return a.mediaMu.Do(func() {
		a.stream = s
	})
}

// MediaStream returns the current stream, or nil.
func (a *Application) MediaStream() (MediaStream, error) {
	var s MediaStream
	err := a.mediaMu.Do(func() {
		s = a.stream
	})
	return s, err
}

// StopMediaStream stops the tracks of override selected by kind, or those of
// the current stream when override is nil. Without either it does nothing.
func (a *Application) StopMediaStream(kind TrackKind, override MediaStream) (int, error) {
	stream := override
	if stream == nil {
		s, err := a.MediaStream()
		if err != nil {
			return 0, err
		}
		stream = s
	}

	n := StopTracks(stream, kind)
	if n > 0 {
		a.logger.Debug().Stringer("kind", kind).Int("tracks", n).Msg("media tracks stopped")
	}
	return n, nil
}

// VideoConstraints describes the video requested from GetUserMedia. Methods
// return a modified copy.
type VideoConstraints struct {
	opts host.Options
}

// NewVideoConstraints returns constraints that accept any video.
func NewVideoConstraints() VideoConstraints {
	return VideoConstraints{opts: host.NewOptions()}
}

func (c VideoConstraints) set(key string, value any) VideoConstraints {
	c.opts = c.opts.Set(key, value)
	return c
}

// Options returns the constraints as an option bag.
func (c VideoConstraints) Options() Options { return c.opts }

// SourceID captures the desktop source with the given id, as returned by the
// shell's screen chooser.
func (c VideoConstraints) SourceID(id string) VideoConstraints {
	return c.set("mandatory.chromeMediaSource", "desktop").
		set("mandatory.chromeMediaSourceId", id)
}

func (c VideoConstraints) MaxWidth(w int) VideoConstraints         { return c.set("mandatory.maxWidth", w) }
func (c VideoConstraints) MaxHeight(h int) VideoConstraints        { return c.set("mandatory.maxHeight", h) }
func (c VideoConstraints) DeviceID(id string) VideoConstraints     { return c.set("deviceId", id) }
func (c VideoConstraints) GroupID(id string) VideoConstraints      { return c.set("groupId", id) }
func (c VideoConstraints) AspectRatio(r float64) VideoConstraints  { return c.set("aspectRatio", r) }
func (c VideoConstraints) FacingMode(mode string) VideoConstraints { return c.set("facingMode", mode) }
func (c VideoConstraints) FrameRate(fps float64) VideoConstraints  { return c.set("frameRate", fps) }
func (c VideoConstraints) Width(w int) VideoConstraints            { return c.set("width", w) }
func (c VideoConstraints) Height(h int) VideoConstraints           { return c.set("height", h) }

// GetUserMedia asks the shell for a stream and hands it to fn, or nil when
// the request fails. audio is passed through as the audio constraint; nil
// requests no audio. The stream does not become current; call SetMediaStream
// for that.
func (a *Application) GetUserMedia(video VideoConstraints, audio any, fn func(MediaStream)) error {
	if audio == nil {
		audio = false
	}
	var v any = true
	if video.opts.Len() > 0 {
		v = video.opts.Map()
	}
	constraints := host.NewOptions().
		Set("video", v).
		Set("audio", audio)

	cb := callback.NewWithoutResult(mediaStreamDecoder(a.host), fn, a.decodeHook())
	then := cb.Bind(a.host)

	return a.commit("get user media", true, []callback.Invoker{cb}, func() error {
		return a.host.GetUserMedia(constraints, then)
	})
}
