package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// fakeIn is an input port whose driver callback the test drives by hand
type fakeIn struct {
	open      bool
	opens     int
	closes    int
	stops     int
	listenErr error
	onMsg     func(msg []byte, milliseconds int32)
}

func (f *fakeIn) Open() error {
	f.open = true
	f.opens++
	return nil
}

func (f *fakeIn) Close() error {
	f.open = false
	f.closes++
	return nil
}

func (f *fakeIn) IsOpen() bool            { return f.open }
func (f *fakeIn) Number() int             { return 0 }
func (f *fakeIn) String() string          { return "fake" }
func (f *fakeIn) Underlying() interface{} { return nil }

func (f *fakeIn) Listen(onMsg func(msg []byte, milliseconds int32), _ drivers.ListenConfig) (func(), error) {
	if f.listenErr != nil {
		return nil, f.listenErr
	}
	f.onMsg = onMsg
	return func() { f.stops++ }, nil
}

type delivered struct {
	ts  int32
	msg []byte
}

func TestSessionDeliversInArrivalOrder(t *testing.T) {
	port := &fakeIn{}
	var got []delivered
	sess, err := Connect(port, func(ts int32, msg []byte) {
		got = append(got, delivered{ts, append([]byte(nil), msg...)})
	})
	require.NoError(t, err)
	defer sess.Close()

	assert.True(t, port.IsOpen())
	assert.Equal(t, 1, port.opens)
	assert.Equal(t, "fake", sess.Name())
	require.NotNil(t, port.onMsg)

	port.onMsg([]byte{0x90, 10, 100}, 5)
	port.onMsg([]byte{0x80, 10, 0}, 7)
	port.onMsg([]byte{0xB0, 7, 1}, 9)

	assert.Equal(t, []delivered{
		{5, []byte{144, 10, 100}},
		{7, []byte{128, 10, 0}},
		{9, []byte{176, 7, 1}},
	}, got)
}

func TestSessionCloseTwice(t *testing.T) {
	port := &fakeIn{}
	sess, err := Connect(port, func(int32, []byte) {})
	require.NoError(t, err)

	assert.NoError(t, sess.Close())
	assert.NoError(t, sess.Close())

	assert.Equal(t, 1, port.stops)
	assert.Equal(t, 1, port.closes)
	assert.False(t, port.IsOpen())
}

func TestSessionReleasesPortWhenListenFails(t *testing.T) {
	boom := errors.New("boom")
	port := &fakeIn{listenErr: boom}

	sess, err := Connect(port, func(int32, []byte) {})
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `open input "fake"`)

	assert.Equal(t, 1, port.closes)
	assert.False(t, port.IsOpen())
}

func TestConnectRejectsMissingArguments(t *testing.T) {
	_, err := Connect(nil, func(int32, []byte) {})
	assert.Error(t, err)

	port := &fakeIn{}
	_, err = Connect(port, nil)
	assert.Error(t, err)
	assert.Zero(t, port.opens)
}
