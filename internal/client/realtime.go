package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

// Subscribe streams change events for tables (all tables when none are
// given). The channel closes when ctx is done or the connection drops.
func (c *Client) Subscribe(ctx context.Context, tables ...string) (<-chan websocket.Event, error) {
	if c.configErr != nil {
		return nil, c.configErr
	}

	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/realtime"

	query := url.Values{"apikey": {c.anonKey}}
	if token := c.Token(); token != "" {
		query.Set("token", token)
	}
	if len(tables) > 0 {
		query.Set("tables", strings.Join(tables, ","))
	}
	u.RawQuery = query.Encode()

	conn, resp, err := gorillaws.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, &APIError{Status: resp.StatusCode, Message: "realtime subscription rejected"}
		}
		return nil, err
	}

	events := make(chan websocket.Event, 16)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(gorillaws.CloseMessage, gorillaws.FormatCloseMessage(gorillaws.CloseNormalClosure, ""))
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var ev websocket.Event
			if err := json.Unmarshal(data, &ev); err != nil {
				continue
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
