/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package transport

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Conn is a length-delimited framed connection: every message is sent as
// a 4-byte big-endian length prefix followed by that many bytes of CBOR.
// Reads and writes are each serialized under their own lock so a single
// Conn can be driven by independent reader and writer goroutines.
type Conn struct {
	nc net.Conn

	rmtx sync.Mutex
	rbuf []byte

	wmtx sync.Mutex
	wbuf bytes.Buffer

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

func newConn(nc net.Conn) *Conn {
	return &Conn{nc: nc}
}

// Close shuts down the underlying socket. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}

// RemoteAddr reports the address of the peer, or nil if unknown.
func (c *Conn) RemoteAddr() net.Addr {
	if c.nc == nil {
		return nil
	}
	return c.nc.RemoteAddr()
}

// WriteMessage frames and sends m as a single frame. The frame is built
// in a scratch buffer and sent with one Write call, under the write lock,
// so frames from concurrent writers on the same Conn never interleave.
func (c *Conn) WriteMessage(m wire.Message) error {
	body, err := wire.EncodeMessage(m)
	if err != nil {
		return err
	}
	return c.writeFrame(body)
}

func (c *Conn) writeFrame(body []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if len(body) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	c.wmtx.Lock()
	defer c.wmtx.Unlock()

	c.wbuf.Reset()
	var lenHdr [4]byte
	binary.BigEndian.PutUint32(lenHdr[:], uint32(len(body)))
	c.wbuf.Write(lenHdr[:])
	c.wbuf.Write(body)

	n, err := c.nc.Write(c.wbuf.Bytes())
	if err != nil {
		return err
	}
	if n != c.wbuf.Len() {
		return ErrShortWrite
	}
	return nil
}

// ReadMessage blocks for the next frame and decodes it into a concrete
// wire.Message.
func (c *Conn) ReadMessage() (wire.Message, error) {
	body, err := c.readFrame()
	if err != nil {
		return nil, err
	}
	return wire.DecodeMessage(body)
}

func (c *Conn) readFrame() ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	c.rmtx.Lock()
	defer c.rmtx.Unlock()

	var lenHdr [4]byte
	if _, err := io.ReadFull(c.nc, lenHdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrShortRead
		}
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenHdr[:])
	if n > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	if cap(c.rbuf) < int(n) {
		c.rbuf = make([]byte, n)
	}
	buf := c.rbuf[:n]
	if _, err := io.ReadFull(c.nc, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrShortRead
		}
		return nil, err
	}
	return buf, nil
}
