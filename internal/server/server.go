package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/optimizer"
	"github.com/yashagw/craneopt/internal/plan"
)

// Node is one operator line of a plan in a response.
type Node struct {
	Depth    int    `json:"depth"`
	Operator string `json:"operator"`
	Tuples   int    `json:"tuples"`
}

// Response is the JSON document written back for every request line.
type Response struct {
	Type         string   `json:"type"`
	Plan         string   `json:"plan,omitempty"`
	Nodes        []Node   `json:"nodes,omitempty"`
	Cost         int      `json:"cost,omitempty"`
	OriginalCost int      `json:"original_cost,omitempty"`
	Candidates   int      `json:"candidates,omitempty"`
	Relations    []string `json:"relations,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Server answers plan requests over a line protocol. Each request is one line:
//
//	EXPLAIN <query>    canonical plan with estimates
//	OPTIMISE <query>   optimised plan with estimates (OPTIMIZE also accepted)
//	RELATIONS          catalogue relation names
//	QUIT | EXIT        close the connection
//
// A bare query is optimised.
type Server struct {
	catalogue *metadata.Manager
	basic     *plan.Planner
	optimizer *optimizer.Optimizer
	logger    *slog.Logger
}

func NewServer(catalogue *metadata.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		catalogue: catalogue,
		basic:     plan.NewPlanner(plan.NewBasicQueryPlanner(catalogue)),
		optimizer: optimizer.NewOptimizer(catalogue, logger),
		logger:    logger.With("component", "server"),
	}
}

// Serve accepts connections until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept connection", "err", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	s.logger.Debug("connection opened", "remote", remote)

	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		if upper == "QUIT" || upper == "EXIT" {
			writer.WriteString("Goodbye!\n")
			writer.Flush()
			break
		}

		if err := writeResponse(writer, s.Handle(line)); err != nil {
			s.logger.Error("write response", "remote", remote, "err", err)
			break
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		s.logger.Error("read request", "remote", remote, "err", err)
	}
	s.logger.Debug("connection closed", "remote", remote)
}

func writeResponse(w *bufio.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(Response{
			Type:  "error",
			Error: fmt.Sprintf("failed to serialize response: %v", err),
		})
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

// Handle answers a single request line.
func (s *Server) Handle(line string) Response {
	command, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	var resp Response
	var err error
	switch strings.ToUpper(command) {
	case "EXPLAIN":
		resp, err = s.explain(rest)
	case "OPTIMISE", "OPTIMIZE":
		resp, err = s.optimise(rest)
	case "RELATIONS":
		resp = Response{Type: "relations", Relations: s.catalogue.Relations()}
	default:
		resp, err = s.optimise(line)
	}
	if err != nil {
		s.logger.Info("request failed", "request", line, "err", err)
		return Response{Type: "error", Error: err.Error()}
	}
	return resp
}

func (s *Server) explain(sql string) (Response, error) {
	op, err := s.basic.CreatePlan(sql)
	if err != nil {
		return Response{}, err
	}
	cost, err := plan.NewEstimator().Estimate(op)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Type:  "explain",
		Plan:  plan.Format(op),
		Nodes: nodesOf(op),
		Cost:  cost,
	}, nil
}

func (s *Server) optimise(sql string) (Response, error) {
	op, err := s.basic.CreatePlan(sql)
	if err != nil {
		return Response{}, err
	}
	res, err := s.optimizer.Run(op)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Type:         "optimise",
		Plan:         plan.Format(res.Plan),
		Nodes:        nodesOf(res.Plan),
		Cost:         res.Cost,
		OriginalCost: res.OriginalCost,
		Candidates:   res.Candidates,
	}, nil
}

func nodesOf(op plan.Operator) []Node {
	stats := plan.Stats(op)
	nodes := make([]Node, len(stats))
	for i, row := range stats {
		nodes[i] = Node{Depth: row.Depth, Operator: row.Operator, Tuples: row.Tuples}
	}
	return nodes
}
