// Package wisp provides a client for live agent thought streams. It
// maintains one streaming connection, keeps a bounded in-memory log of the
// most recent messages, and reconnects automatically after transport
// failures up to a configured attempt cap.
//
// Quick start:
//
//	s, err := wisp.New("wss://agent.example/thoughts",
//	    wisp.WithMaxEntries(100),
//	    wisp.WithReconnectAttempts(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s.Open()
//	defer s.Close()
//
//	for _, m := range s.Messages() {
//	    fmt.Println(m.Text)
//	}
//
// The Stream serializes all internal activity, so Messages always returns
// a consistent snapshot. ws://, wss://, http://, and https:// endpoints
// are supported; HTTP endpoints are consumed as server-sent events.
package wisp
