package transport

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

type stubDialer struct{ endpoint *url.URL }

func (d *stubDialer) Dial(_ context.Context) (Conn, error) { return nil, nil }

func TestResolve(t *testing.T) {
	Register("stub", func(u *url.URL) Dialer { return &stubDialer{endpoint: u} })

	d, err := Resolve("stub://agent.example:9000/thoughts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sd, ok := d.(*stubDialer)
	if !ok {
		t.Fatalf("expected *stubDialer, got %T", d)
	}
	if sd.endpoint.Host != "agent.example:9000" {
		t.Fatalf("endpoint not passed through: %v", sd.endpoint)
	}
}

func TestResolve_Errors(t *testing.T) {
	if _, err := Resolve(""); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
	if _, err := Resolve("nosuchscheme://host"); err == nil {
		t.Fatal("expected error for unregistered scheme")
	} else if !strings.Contains(err.Error(), "nosuchscheme") {
		t.Fatalf("error should name the scheme: %v", err)
	}
	if _, err := Resolve("://"); err == nil {
		t.Fatal("expected error for unparsable endpoint")
	}
}
