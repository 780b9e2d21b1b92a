package websockets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/trusted-token-transfers/pkg/websockets/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func connectRequest(connectionID string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		RequestContext: events.APIGatewayWebsocketProxyRequestContext{
			ConnectionID: connectionID,
		},
	}
}

func TestHandleConnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		connManager := new(mocks.ConnectionManager)
		connManager.On("AddConnection", mock.Anything, "conn-1").Return(nil)

		h := NewHandler(connManager)
		resp, err := h.HandleConnect(context.Background(), connectRequest("conn-1"))

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		connManager.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		connManager := new(mocks.ConnectionManager)
		connManager.On("AddConnection", mock.Anything, "conn-1").Return(errors.New("some storage error"))

		h := NewHandler(connManager)
		resp, err := h.HandleConnect(context.Background(), connectRequest("conn-1"))

		assert.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		connManager.AssertExpectations(t)
	})
}

func TestHandleDisconnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		connManager := new(mocks.ConnectionManager)
		connManager.On("RemoveConnection", mock.Anything, "conn-1").Return(nil)

		h := NewHandler(connManager)
		resp, err := h.HandleDisconnect(context.Background(), connectRequest("conn-1"))

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		connManager.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		connManager := new(mocks.ConnectionManager)
		connManager.On("RemoveConnection", mock.Anything, "conn-1").Return(errors.New("some storage error"))

		h := NewHandler(connManager)
		resp, err := h.HandleDisconnect(context.Background(), connectRequest("conn-1"))

		assert.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		connManager.AssertExpectations(t)
	})
}

func TestHandleDefault(t *testing.T) {
	connManager := new(mocks.ConnectionManager)

	h := NewHandler(connManager)
	resp, err := h.HandleDefault(context.Background(), connectRequest("conn-1"))

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	connManager.AssertNotCalled(t, "AddConnection", mock.Anything, mock.Anything)
}
