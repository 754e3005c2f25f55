package server

import (
	"context"
	"log"
	"net"
	"sync"

	"github.com/skillet-run/skillet/pkg/server/pool"
)

// Evaluator is the subset of the root Skillet engine the server needs:
// evaluate one expression against a set of arguments.
type Evaluator interface {
	EvaluateText(ctx context.Context, expression string, args map[string]interface{}) (interface{}, bool, error)
}

// Server accepts TCP connections and dispatches each request line to
// the worker pool, grounded on the teacher's Master.acceptConnections
// loop (pkg/fpm/master/master.go) but with one goroutine per
// connection reading a persistent stream of JSON lines instead of one
// FastCGI BEGIN_REQUEST per connection.
type Server struct {
	addr     string
	eval     Evaluator
	pool     *pool.Pool
	listener net.Listener
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New builds a Server bound to addr, dispatching work to p.
func New(addr string, eval Evaluator, p *pool.Pool) *Server {
	return &Server{
		addr:     addr,
		eval:     eval,
		pool:     p,
		stopChan: make(chan struct{}),
	}
}

// Start opens the listener and begins accepting connections in the
// background. It returns once the listener is open.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	log.Printf("skillet: listening on %s", s.addr)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				log.Printf("skillet: accept error: %v", err)
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	proto := NewProtocol(conn)
	for {
		req, err := proto.ReadRequest()
		if err != nil {
			return
		}

		job := pool.NewJob(context.Background(), func(ctx context.Context) (interface{}, error) {
			result, hit, err := s.eval.EvaluateText(ctx, req.Expression, req.Args)
			return evalOutcome{result: result, hit: hit}, err
		})

		resp := &Response{ID: req.ID}
		v, err := s.pool.Submit(job)
		if err != nil {
			resp.Error = err.Error()
		} else {
			outcome := v.(evalOutcome)
			resp.Result = outcome.result
			resp.CacheHit = outcome.hit
		}

		if err := proto.WriteResponse(resp); err != nil {
			return
		}
	}
}

type evalOutcome struct {
	result interface{}
	hit    bool
}

// Stop closes the listener and waits for the accept loop and every
// connection handler to return. It does not close open connections: a
// handler returns only when its client disconnects or a read or write
// on the connection fails, so Stop blocks while any client stays
// connected.
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
}
