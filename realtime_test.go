package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/wellness-go-api/internal/energy"
	"lg/wellness-go-api/internal/tracker"
)

func TestRealtime_PushesRecalculatedGoal(t *testing.T) {
	env := setupTest(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?token=" + testToken
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.handler.hub.connections(1) == 1 },
		2*time.Second, 10*time.Millisecond)

	env.handler.hub.GoalRecalculated(1, tracker.Goal{ID: 7, UserID: 1, GoalType: energy.GoalLoss, CumulativeActualDeficit: 15400})
	// Other users' updates are not delivered.
	env.handler.hub.GoalRecalculated(2, tracker.Goal{ID: 8, UserID: 2})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg realtimeMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "goal.recalculated", msg.Kind)
	assert.Equal(t, 7, msg.Goal.ID)
	assert.Equal(t, 15400, msg.Goal.CumulativeActualDeficit)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return env.handler.hub.connections(1) == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestRealtime_RejectsMissingToken(t *testing.T) {
	env := setupTest(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRealtimeHub_CountsClients(t *testing.T) {
	var total int
	hub := newRealtimeHub(nil, func(d int) { total += d })
	c := &wsClient{userID: 3, send: make(chan []byte, 1)}

	hub.register(c)
	assert.Equal(t, 1, total)
	hub.unregister(c)
	hub.unregister(c)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, hub.connections(3))
}
