package nwkit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestPeerStream(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection() error = %v", err)
	}
	defer pc.Close()

	video, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", "nwkit")
	if err != nil {
		t.Fatal(err)
	}
	audio, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus}, "audio", "nwkit")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pc.AddTrack(video); err != nil {
		t.Fatal(err)
	}
	if _, err := pc.AddTrack(audio); err != nil {
		t.Fatal(err)
	}

	stream := PeerStream(pc)
	if stream.ID() == "" {
		t.Errorf("ID() is empty")
	}

	kinds := map[string]int{}
	for _, track := range stream.GetTracks() {
		if track == nil {
			continue
		}
		kinds[track.Kind()]++
	}
	if kinds["video"] == 0 || kinds["audio"] == 0 {
		t.Errorf("kinds = %v, want audio and video", kinds)
	}
	for kind := range kinds {
		if kind != "video" && kind != "audio" {
			t.Errorf("unexpected kind %q", kind)
		}
	}

	if n := StopTracks(stream, TrackVideo); n < 1 {
		t.Errorf("StopTracks(Video) = %d, want at least 1", n)
	}
}

func TestPeerStreamLogsStopFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection() error = %v", err)
	}
	video, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", "nwkit")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pc.AddTrack(video); err != nil {
		t.Fatal(err)
	}

	stream := PeerStream(pc)
	tracks := stream.GetTracks()
	if err := pc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if n := StopTracks(&fixedStream{tracks: tracks}, TrackVideo); n != 1 {
		t.Fatalf("StopTracks() = %d, want 1", n)
	}
	if !strings.Contains(buf.String(), "remove sent track") {
		t.Errorf("RemoveTrack failure on a closed connection was not logged: %q", buf.String())
	}
}

// fixedStream replays tracks captured before the connection closed.
type fixedStream struct {
	tracks []MediaStreamTrack
}

func (s *fixedStream) ID() string                    { return "fixed" }
func (s *fixedStream) GetTracks() []MediaStreamTrack { return s.tracks }
