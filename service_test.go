package kvgate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/kvgate"
)

type SpyStoreReader struct {
	mock.Mock
}

func (s *SpyStoreReader) Lookup(ctx context.Context, route kvgate.RouteConfig, key []byte) ([]byte, error) {
	args := s.Called(ctx, route, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestNewGateway_NilReader(t *testing.T) {
	gateway, err := kvgate.NewGateway(nil, kvgate.GatewayConfig{})

	assert.Error(t, err)
	assert.Nil(t, gateway)
}

func TestNewGateway_NegativePathLength(t *testing.T) {
	gateway, err := kvgate.NewGateway(new(SpyStoreReader), kvgate.GatewayConfig{MaxPathLength: -1})

	assert.Error(t, err)
	assert.Nil(t, gateway)
}

func TestNewGateway_DefaultPathLength(t *testing.T) {
	gateway, err := kvgate.NewGateway(new(SpyStoreReader), kvgate.GatewayConfig{})

	require.NoError(t, err)
	assert.Equal(t, kvgate.DefaultMaxPathLength, gateway.MaxPathLength())
}

func TestGateway_Get_Found(t *testing.T) {
	reader := new(SpyStoreReader)
	gateway, err := kvgate.NewGateway(reader, kvgate.GatewayConfig{})
	require.NoError(t, err)

	route := kvgate.ResolveRoute(kvgate.RouteSettings{StorePath: "/srv/images.db", ContentType: "image/png"})
	reader.On("Lookup", mock.Anything, route, []byte("42")).Return([]byte("hello"), nil)

	obj, err := gateway.Get(context.Background(), route, "/images/42")

	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, []byte("hello"), obj.Body)
	reader.AssertExpectations(t)
}

func TestGateway_Get_EmptyKeyIsLookedUp(t *testing.T) {
	reader := new(SpyStoreReader)
	gateway, err := kvgate.NewGateway(reader, kvgate.GatewayConfig{})
	require.NoError(t, err)

	route := kvgate.ResolveRoute()
	reader.On("Lookup", mock.Anything, route, []byte{}).Return(nil, kvgate.ErrNotFound)

	_, err = gateway.Get(context.Background(), route, "/images/")

	assert.ErrorIs(t, err, kvgate.ErrNotFound)
	reader.AssertExpectations(t)
}

func TestGateway_Get_PathTooLong(t *testing.T) {
	reader := new(SpyStoreReader)
	gateway, err := kvgate.NewGateway(reader, kvgate.GatewayConfig{MaxPathLength: 16})
	require.NoError(t, err)

	_, err = gateway.Get(context.Background(), kvgate.ResolveRoute(), "/"+strings.Repeat("a", 15))

	assert.ErrorIs(t, err, kvgate.ErrPathTooLong)
	reader.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_Get_StoreErrors(t *testing.T) {
	tt := []struct {
		Name string
		Err  error
	}{
		{Name: "not found", Err: kvgate.ErrNotFound},
		{Name: "open failure", Err: kvgate.ErrStoreOpen},
		{Name: "read failure", Err: kvgate.ErrStoreRead},
		{Name: "allocation failure", Err: kvgate.ErrAllocation},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			reader := new(SpyStoreReader)
			gateway, err := kvgate.NewGateway(reader, kvgate.GatewayConfig{})
			require.NoError(t, err)

			reader.On("Lookup", mock.Anything, mock.Anything, []byte("k")).
				Return(nil, errors.Join(errors.New("boom"), tc.Err))

			obj, err := gateway.Get(context.Background(), kvgate.ResolveRoute(), "/x/k")

			assert.ErrorIs(t, err, tc.Err)
			assert.Nil(t, obj.Body)
			reader.AssertExpectations(t)
		})
	}
}
