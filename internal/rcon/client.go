// Package rcon implements the Minecraft remote console protocol: an
// authenticated request/response exchange over TCP with little-endian
// length-prefixed packets.
package rcon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

const (
	typeAuth    = 3
	typeCommand = 2

	authRequestID    = 1
	commandRequestID = 2

	readTimeout = 5 * time.Second

	// maxPacketSize bounds the advertised body length; the server caps its
	// responses well below this, so anything larger is a framing error.
	maxPacketSize = 4096
	// minPacketSize is requestId + type + the two NUL terminators.
	minPacketSize = 10
)

// ErrAuthFailed reports that the server rejected the password.
var ErrAuthFailed = errors.New("rcon: authentication failed")

// Packet is one protocol frame, without the length prefix.
type Packet struct {
	RequestID int32
	Type      int32
	Payload   string
}

// Client executes commands against one server endpoint. Each call opens a
// fresh connection, authenticates, runs the command and closes.
type Client struct {
	host     string
	port     int
	password string
}

func NewClient(host string, port int, password string) *Client {
	return &Client{host: host, port: port, password: password}
}

// ExecuteCommand runs one command and returns the server's text response.
// Any authentication, I/O or framing failure aborts the whole exchange.
func (c *Client) ExecuteCommand(command string) (string, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(c.host, strconv.Itoa(c.port)))
	if err != nil {
		return "", fmt.Errorf("rcon: connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return "", fmt.Errorf("rcon: set deadline: %w", err)
	}

	if err := writePacket(conn, authRequestID, typeAuth, c.password); err != nil {
		return "", fmt.Errorf("rcon: send auth: %w", err)
	}
	auth, err := readPacket(conn)
	if err != nil {
		return "", fmt.Errorf("rcon: read auth response: %w", err)
	}
	if auth.RequestID == -1 {
		return "", ErrAuthFailed
	}

	if err := writePacket(conn, commandRequestID, typeCommand, command); err != nil {
		return "", fmt.Errorf("rcon: send command: %w", err)
	}
	resp, err := readPacket(conn)
	if err != nil {
		return "", fmt.Errorf("rcon: read command response: %w", err)
	}

	return resp.Payload, nil
}

// writePacket frames and sends one packet. The length prefix excludes
// itself: requestId (4) + type (4) + payload + two NUL terminators.
func writePacket(w io.Writer, requestID, packetType int32, payload string) error {
	size := 4 + 4 + len(payload) + 2

	buf := make([]byte, 0, 4+size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(requestID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(packetType))
	buf = append(buf, payload...)
	buf = append(buf, 0, 0)

	_, err := w.Write(buf)
	return err
}

// readPacket reads one length-prefixed packet.
func readPacket(r io.Reader) (Packet, error) {
	var sizeBytes [4]byte
	if _, err := io.ReadFull(r, sizeBytes[:]); err != nil {
		return Packet{}, err
	}
	size := int(int32(binary.LittleEndian.Uint32(sizeBytes[:])))
	if size < minPacketSize || size > maxPacketSize {
		return Packet{}, fmt.Errorf("malformed packet length %d", size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return Packet{}, err
	}

	return Packet{
		RequestID: int32(binary.LittleEndian.Uint32(body[0:4])),
		Type:      int32(binary.LittleEndian.Uint32(body[4:8])),
		Payload:   string(body[8 : size-2]),
	}, nil
}
