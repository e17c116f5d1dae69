package server

import (
	"bytes"
	"net"
	"testing"

	"github.com/studybuddy/remindd/common"
)

func TestIntBytesRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 255, 256, 1 << 16, common.MaxMessageSize} {
		if got := bytesToInt(intToBytes(v)); got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	a := NewSyncConn(client)
	b := NewSyncConn(srv)

	payload := []byte(`{"method":"status"}`)
	errCh := make(chan error, 1)
	go func() { errCh <- a.Write(payload) }()

	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestReadRejectsOversizeFrame(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	go func() {
		_, _ = client.Write(intToBytes(common.MaxMessageSize + 1))
	}()

	if _, err := NewSyncConn(srv).Read(); err == nil {
		t.Fatal("oversize frame accepted")
	}
}

func TestEmptyFrame(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	go func() {
		_ = NewSyncConn(client).Write(nil)
	}()

	got, err := NewSyncConn(srv).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d bytes, want 0", len(got))
	}
}
