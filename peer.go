package nwkit

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// PeerStream exposes the tracks of a WebRTC peer connection as a
// MediaStream, so StopTracks and StopMediaStream work on them. Stopping a
// sent track removes it from the connection; stopping a received track stops
// its receiver.
func PeerStream(pc *webrtc.PeerConnection) MediaStream {
	return &peerStream{
		id:      uuid.NewString(),
		pc:      pc,
		stopped: make(map[any]bool),
	}
}

type peerStream struct {
	id string
	pc *webrtc.PeerConnection

	mu      sync.Mutex
	stopped map[any]bool
}

func (s *peerStream) ID() string {
	return s.id
}

func (s *peerStream) GetTracks() []MediaStreamTrack {
	var tracks []MediaStreamTrack

	for _, sender := range s.pc.GetSenders() {
		t := sender.Track()
		if t == nil {
			tracks = append(tracks, nil)
			continue
		}
		sender := sender
		tracks = append(tracks, &peerTrack{
			stream: s,
			key:    sender,
			kind:   t.Kind(),
			stop: func() {
				if err := s.pc.RemoveTrack(sender); err != nil {
					log.Warn().Err(err).Str("stream", s.id).Msg("remove sent track")
				}
			},
		})
	}

	for _, receiver := range s.pc.GetReceivers() {
		t := receiver.Track()
		if t == nil {
			tracks = append(tracks, nil)
			continue
		}
		receiver := receiver
		tracks = append(tracks, &peerTrack{
			stream: s,
			key:    receiver,
			kind:   t.Kind(),
			stop: func() {
				if err := receiver.Stop(); err != nil {
					log.Warn().Err(err).Str("stream", s.id).Msg("stop received track")
				}
			},
		})
	}

	return tracks
}

// once runs fn the first time key is stopped.
func (s *peerStream) once(key any, fn func()) {
	s.mu.Lock()
	if s.stopped[key] {
		s.mu.Unlock()
		return
	}
	s.stopped[key] = true
	s.mu.Unlock()

	fn()
}

type peerTrack struct {
	stream *peerStream
	key    any
	kind   webrtc.RTPCodecType
	stop   func()
}

func (t *peerTrack) Kind() string {
	return t.kind.String()
}

func (t *peerTrack) Stop() {
	t.stream.once(t.key, t.stop)
}
