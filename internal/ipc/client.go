package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Join enqueues the requester.
func (c *Client) Join(requesterID, displayName, note string) (*JoinResponse, error) {
	var resp JoinResponse
	req := JoinRequest{RequesterID: requesterID, DisplayName: displayName, Note: note}
	if err := c.client.Call("Waitlist.Join", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Leave withdraws the requester's own entry.
func (c *Client) Leave(requesterID string) (*LeaveResponse, error) {
	var resp LeaveResponse
	if err := c.client.Call("Waitlist.Leave", LeaveRequest{RequesterID: requesterID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Position retrieves the requester's current position.
func (c *Client) Position(requesterID string) (*PositionResponse, error) {
	var resp PositionResponse
	if err := c.client.Call("Waitlist.Position", PositionRequest{RequesterID: requesterID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List retrieves the full queue on behalf of the operator.
func (c *Client) List(requesterID string) (*ListResponse, error) {
	var resp ListResponse
	if err := c.client.Call("Waitlist.List", ListRequest{RequesterID: requesterID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Remove deletes the target's entry on behalf of the operator.
func (c *Client) Remove(requesterID, target string) (*RemoveResponse, error) {
	var resp RemoveResponse
	req := RemoveRequest{RequesterID: requesterID, Target: target}
	if err := c.client.Call("Waitlist.Remove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Waitlist.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Waitlist.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
