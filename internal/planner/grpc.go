package planner

// #region imports
import (
	"context"
	"errors"
	"fmt"

	pb "github.com/mkhalilov/prospector/go-controller/gen/planner"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// #endregion

// #region client-struct

// Client wraps the gRPC connection to the Python planner service.
type Client struct {
	conn   *grpc.ClientConn
	client pb.PlannerServiceClient
}

// #endregion

// #region constructor

// NewClient connects to the planner gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewPlannerServiceClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.PlannerServiceClient) *Client {
	return &Client{client: svc}
}

// #endregion

// #region close

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// #endregion

// #region recommend

// Recommend asks the planner for a batch of samples at the requested
// fidelity. Any RPC failure, and an empty batch, surface as *PlannerError.
func (c *Client) Recommend(ctx context.Context, history []ledger.Observation, fidelity float64, batchSize int) ([]param.Assignment, error) {
	resp, err := c.client.Recommend(ctx, &pb.RecommendRequest{
		History:   historyToProto(history),
		Fidelity:  fidelity,
		BatchSize: int32(batchSize),
	})
	if err != nil {
		return nil, &PlannerError{Op: "recommend", Err: err}
	}
	samples, err := samplesFromProto(resp.Samples)
	if err != nil {
		return nil, &PlannerError{Op: "recommend", Err: err}
	}
	return samples, nil
}

// #endregion

// #region recommend-target-fidelity

// RecommendTargetFidelity asks the planner for its greedy best guess at the
// highest configured fidelity.
func (c *Client) RecommendTargetFidelity(ctx context.Context, history []ledger.Observation, batchSize int) ([]param.Assignment, error) {
	resp, err := c.client.RecommendTargetFidelity(ctx, &pb.TargetFidelityRequest{
		History:   historyToProto(history),
		BatchSize: int32(batchSize),
	})
	if err != nil {
		return nil, &PlannerError{Op: "recommend target fidelity", Err: err}
	}
	samples, err := samplesFromProto(resp.Samples)
	if err != nil {
		return nil, &PlannerError{Op: "recommend target fidelity", Err: err}
	}
	return samples, nil
}

// #endregion

// #region conversion

func historyToProto(history []ledger.Observation) []*pb.Observation {
	out := make([]*pb.Observation, len(history))
	for i, obs := range history {
		out[i] = &pb.Observation{
			Sample:      assignmentToProto(obs.Sample),
			Measurement: obs.Measurement,
		}
	}
	return out
}

func assignmentToProto(a param.Assignment) *pb.Assignment {
	msg := &pb.Assignment{}
	for name, v := range a.Values() {
		msg.Params = append(msg.Params, &pb.ParamEntry{Name: name, Value: v})
	}
	for name, cls := range a.Classes() {
		msg.Params = append(msg.Params, &pb.ParamEntry{Name: name, Category: cls})
	}
	if s, ok := a.Fidelity(); ok {
		msg.Fidelity = s
	}
	return msg
}

func assignmentFromProto(msg *pb.Assignment) (param.Assignment, error) {
	values := make(map[string]float64)
	classes := make(map[string]string)
	for _, p := range msg.GetParams() {
		if p.GetName() == "" {
			return param.Assignment{}, errors.New("parameter entry with empty name")
		}
		if p.GetCategory() != "" {
			classes[p.GetName()] = p.GetCategory()
			continue
		}
		values[p.GetName()] = p.GetValue()
	}
	a := param.NewAssignment(values, classes)
	if _, ok := a.Fidelity(); !ok {
		return param.Assignment{}, fmt.Errorf("sample %s carries no fidelity parameter", a.Key())
	}
	return a, nil
}

func samplesFromProto(msgs []*pb.Assignment) ([]param.Assignment, error) {
	if len(msgs) == 0 {
		return nil, errors.New("planner returned no samples")
	}
	out := make([]param.Assignment, len(msgs))
	for i, msg := range msgs {
		a, err := assignmentFromProto(msg)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// #endregion
