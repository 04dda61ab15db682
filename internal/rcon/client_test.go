package rcon

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// scriptedServer runs handler for a single connection and returns the
// address to dial.
func scriptedServer(t *testing.T, handler func(conn net.Conn)) (host string, port int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func TestExecuteCommand(t *testing.T) {
	host, port := scriptedServer(t, func(conn net.Conn) {
		auth, err := readPacket(conn)
		if err != nil || auth.Type != typeAuth || auth.Payload != "secret" {
			return
		}
		// Auth accepted: echo the request id back.
		writePacket(conn, auth.RequestID, 2, "")

		cmd, err := readPacket(conn)
		if err != nil || cmd.Payload != "list" {
			return
		}
		writePacket(conn, cmd.RequestID, 0, "There are 2 of a max of 10 players online: Alice, Bob")
	})

	c := NewClient(host, port, "secret")
	resp, err := c.ExecuteCommand("list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "There are 2 of a max of 10 players online: Alice, Bob" {
		t.Errorf("unexpected response %q", resp)
	}
}

func TestAuthFailureAbortsBeforeCommand(t *testing.T) {
	sawMore := make(chan bool, 1)

	host, port := scriptedServer(t, func(conn net.Conn) {
		if _, err := readPacket(conn); err != nil {
			return
		}
		// Reject: request id -1 signals a bad password.
		writePacket(conn, -1, 2, "")

		// The client must close without sending the command packet.
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 1)
		_, err := conn.Read(buf)
		sawMore <- err == nil
	})

	c := NewClient(host, port, "wrong")
	_, err := c.ExecuteCommand("list")
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}

	select {
	case more := <-sawMore:
		if more {
			t.Error("client sent data after auth rejection")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("scripted server did not finish")
	}
}

func TestMalformedLengthPrefix(t *testing.T) {
	host, port := scriptedServer(t, func(conn net.Conn) {
		if _, err := readPacket(conn); err != nil {
			return
		}
		// An absurd length prefix is a framing error, not a read to attempt.
		conn.Write([]byte{0xff, 0xff, 0xff, 0x7f})
	})

	c := NewClient(host, port, "secret")
	if _, err := c.ExecuteCommand("list"); err == nil {
		t.Error("expected error for malformed length prefix")
	}
}

func TestConnectionRefused(t *testing.T) {
	// Grab a port and close it again so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	c := NewClient("127.0.0.1", port, "secret")
	if _, err := c.ExecuteCommand("list"); err == nil {
		t.Error("expected error when nothing is listening")
	}
}

func TestPacketRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go writePacket(client, 7, typeCommand, "say hello")

	p, err := readPacket(server)
	if err != nil {
		t.Fatal(err)
	}
	if p.RequestID != 7 || p.Type != typeCommand || p.Payload != "say hello" {
		t.Errorf("unexpected packet %+v", p)
	}
}

func TestReadPacketTruncated(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		// Announce 20 bytes but deliver only 4, then close.
		client.Write([]byte{20, 0, 0, 0, 1, 2, 3, 4})
		client.Close()
	}()

	if _, err := readPacket(server); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
}
