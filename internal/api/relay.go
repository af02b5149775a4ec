// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

// Session is an open terminal relay for one execute action.
type Session struct {
	conn *websocket.Conn
	stop func() bool
}

// RelayURL appends the one time token to the relay endpoint.
func RelayURL(access apimodel.HostAccess) string {
	sep := "?"
	if strings.Contains(access.URL, "?") {
		sep = "&"
	}
	return access.URL + sep + "token=" + access.Token
}

func (c *Client) OpenRelay(ctx context.Context, access apimodel.HostAccess) (*Session, error) {
	if access.URL == "" {
		return nil, fmt.Errorf("execute response carried no relay url")
	}

	dialer := *websocket.DefaultDialer
	if c.tlsConfig != nil {
		dialer.TLSClientConfig = c.tlsConfig.Clone()
	}

	target := RelayURL(access)
	slog.Debug("opening relay", "url", access.URL)

	conn, resp, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to open relay (%s): %w", resp.Status, err)
		}
		return nil, fmt.Errorf("failed to open relay: %w", err)
	}

	// Unblocks a pending read when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})

	return &Session{conn: conn, stop: stop}, nil
}

// First returns the first frame and nothing else.
func (s *Session) First(ctx context.Context) ([]byte, error) {
	for frame, err := range s.Frames(ctx) {
		return frame, err
	}

	return nil, fmt.Errorf("relay closed before sending any output")
}

// Frames yields decoded frames until the relay closes or ctx is done. Breaking
// out of the loop stops reading.
func (s *Session) Frames(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			_, data, err := s.conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				yield(nil, fmt.Errorf("failed to read relay frame: %w", err))
				return
			}

			if !yield(DecodeFrame(data), nil) {
				return
			}
		}
	}
}

func (s *Session) Close() error {
	s.stop()
	err := s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if closeErr := s.conn.Close(); err == nil {
		err = closeErr
	}
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}

// DecodeFrame undoes the base64 encoding the relay applies to terminal output.
// Frames that are not valid base64 are passed through.
func DecodeFrame(data []byte) []byte {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return data
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return data
	}

	return decoded
}
