package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/mcusim/softuart/pkg/board"
)

func TestServerStreamsFrames(t *testing.T) {
	d := board.NewDisplay()
	d.On()
	d.SetRow(0, 0x41)
	d.SetRow(3, 0x18)

	srv := (&Config{Interval: 5 * time.Millisecond}).NewServer(d)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1)
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()

	var frame Frame
	require.NoError(t, websocket.JSON.Receive(conn, &frame))
	require.Equal(t, uint16(0x41), frame.Rows[0])
	require.Equal(t, uint16(0x18), frame.Rows[3])
}
