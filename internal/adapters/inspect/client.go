package inspect

import (
	"context"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ ports.InspectorClient = (*Client)(nil)

// Client implements ports.InspectorClient.
type Client struct {
	conn   *grpc.ClientConn
	socket string
}

// Dial connects to the inspector over UDS.
// grpc.NewClient returns immediately; the connection is made on first RPC.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInspectorUnavailable.Error()), "socket", socketPath)
	}
	return &Client{conn: conn, socket: socketPath}, nil
}

// Status fetches the latest frame report.
func (c *Client) Status(ctx context.Context) (domain.FrameReport, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.conn.Invoke(ctx, statusMethod, &emptypb.Empty{}, out); err != nil {
		return domain.FrameReport{}, c.wrap(err)
	}
	return decodeReport(out)
}

// NodeStatus fetches the process status of one node.
func (c *Client) NodeStatus(ctx context.Context, id domain.NodeID) (domain.ProcessStatus, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, nodeStatusMethod, wrapperspb.UInt64(uint64(id)), out); err != nil {
		return domain.StatusUnknown, c.wrap(err)
	}
	return domain.ProcessStatus(out.GetValue()), nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) wrap(err error) error {
	if status.Code(err) == codes.Unavailable {
		return zerr.With(zerr.Wrap(err, domain.ErrInspectorUnavailable.Error()), "socket", c.socket)
	}
	return zerr.Wrap(err, "inspector request failed")
}
