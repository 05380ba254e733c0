/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package transport

import (
	"crypto/tls"
	"fmt"
	"net"
)

// Endpoint is a parsed (ip, port) pair identifying the producer-facing
// socket, as distinct from a hostname string that still needs resolving.
type Endpoint struct {
	IP   net.IP
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP.String(), fmt.Sprintf("%d", e.Port))
}

// Dial connects to ep under the given TLS posture and returns a framed
// Conn ready for AuthRequest/AuthResponse exchange.
func Dial(ep Endpoint, mode TLSMode) (*Conn, error) {
	dst := ep.String()
	switch mode {
	case TLSDisabled:
		conn, err := net.DialTimeout("tcp", dst, DialTimeout)
		if err != nil {
			return nil, err
		}
		if err := checkLocalAddr(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return newConn(conn), nil
	case TLSSecureNativeRoots, TLSInsecureAcceptAny:
		dialer := &net.Dialer{Timeout: DialTimeout}
		cfg := &tls.Config{InsecureSkipVerify: mode == TLSInsecureAcceptAny}
		conn, err := tls.DialWithDialer(dialer, "tcp", dst, cfg)
		if err != nil {
			return nil, err
		}
		if err := checkLocalAddr(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return newConn(conn), nil
	default:
		return nil, fmt.Errorf("transport: unknown TLS mode %d", mode)
	}
}

// checkLocalAddr confirms the freshly dialed socket's local address parses
// as an IP, the same sanity check gravwell's newTcpConn/newTlsConn perform
// before handing a connection back to a caller.
func checkLocalAddr(conn net.Conn) error {
	host, _, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		return ErrLocalAddrParse
	}
	if net.ParseIP(host) == nil {
		return ErrLocalAddrParse
	}
	return nil
}
