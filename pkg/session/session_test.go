package session

import (
	"testing"

	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoadThenServerInfo(t *testing.T) {
	s := New()
	assert.Equal(t, ScreenMainMenu, s.Screen())

	// A load broadcast moves the client into loading.
	require.NoError(t, s.Apply(messages.NewLoad()))
	transition, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, ScreenMainMenu, transition.From)
	assert.Equal(t, ScreenLoading, transition.To)
	assert.Equal(t, ScreenLoading, s.Screen())

	// A roster update while loading changes the roster, not the screen.
	require.NoError(t, s.Apply(messages.NewServerInfo([]string{"A", "B"})))
	assert.Equal(t, []string{"A", "B"}, s.Players())
	assert.Equal(t, ScreenLoading, s.Screen())
	_, ok = s.Flush()
	assert.False(t, ok)
}

func TestSession_ServerInfoReplacesRoster(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(messages.NewServerInfo([]string{"A", "B", "C"})))
	require.NoError(t, s.Apply(messages.NewServerInfo([]string{"A"})))
	assert.Equal(t, []string{"A"}, s.Players())
}

func TestSession_Apply_Errors(t *testing.T) {
	s := New()
	assert.Error(t, s.Apply(&messages.Message{Type: "bogus"}))
	assert.Error(t, s.Apply(&messages.Message{Type: messages.MessageTypeServerInfo}))
}

func TestSession_Apply_LoadedIsHostSideOnly(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(messages.NewLoaded()))
	assert.Equal(t, ScreenMainMenu, s.Screen())
	_, ok := s.Flush()
	assert.False(t, ok)
}

func TestSession_SetNext(t *testing.T) {
	s := New()
	require.NoError(t, s.SetNext(ScreenJoin))

	// A queued transition blocks further queuing until it flushes.
	assert.Error(t, s.SetNext(ScreenServer))

	s.OverwriteNext(ScreenServer)
	transition, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, ScreenServer, transition.To)

	require.NoError(t, s.SetNext(ScreenLoading))
}

func TestSession_Reset(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(messages.NewServerInfo([]string{"A"})))
	s.OverwriteNext(ScreenJoinedGame)
	s.Flush()

	s.Reset()
	assert.Equal(t, ScreenMainMenu, s.Screen())
	assert.Empty(t, s.Players())
	_, ok := s.Flush()
	assert.False(t, ok)
}
