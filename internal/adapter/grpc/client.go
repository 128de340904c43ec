package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls WalletFlowService methods with plain maps as payloads
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on top of an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req and returns the decoded response.
// Errors are gRPC status errors as returned by the server.
func (c *Client) Call(ctx context.Context, method string, req map[string]interface{}, opts ...grpc.CallOption) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
