package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/openacuity/acuity/internal/audit"
	"github.com/openacuity/acuity/internal/color"
	"github.com/openacuity/acuity/internal/dom"
	"github.com/openacuity/acuity/internal/engine"
	"github.com/openacuity/acuity/internal/logger"
	"github.com/openacuity/acuity/internal/prefs"
	"github.com/openacuity/acuity/pkg/protocol"
)

var log = logger.ForComponent("server")

const Version = "0.3.0"

// Server exposes the engine over a unix socket speaking JSON-RPC 2.0.
type Server struct {
	engine    *engine.Engine
	listener  *SocketListener
	startTime time.Time

	connMu sync.Mutex
	conns  map[*jsonrpc2.Conn]bool

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

func New(socketPath string, eng *engine.Engine) *Server {
	return &Server{
		engine:    eng,
		listener:  NewSocketListener(socketPath),
		startTime: time.Now(),
		conns:     make(map[*jsonrpc2.Conn]bool),
		shutdown:  make(chan struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.listener.Start(); err != nil {
		return fmt.Errorf("starting socket listener: %w", err)
	}

	log.Info("daemon listening", "socket", s.listener.path)
	go s.acceptConnections(ctx)
	return nil
}

func (s *Server) acceptConnections(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				continue
			}
		}

		stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.PlainObjectCodec{})
		rpcConn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))

		s.connMu.Lock()
		s.conns[rpcConn] = true
		s.connMu.Unlock()

		go func() {
			<-rpcConn.DisconnectNotify()
			s.connMu.Lock()
			delete(s.conns, rpcConn)
			s.connMu.Unlock()
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	log.Debug("handling request", "method", req.Method)

	switch req.Method {
	case protocol.MethodHealth:
		return s.health(), nil

	case protocol.MethodContrastCheck:
		var params protocol.ContrastParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		result, err := s.engine.CheckContrastHex(params.Foreground, params.Background)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
		return toContrastResult(result), nil

	case protocol.MethodAuditRun:
		var params protocol.AuditRunParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		doc, err := dom.ParseString(params.HTML)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
		return s.toAuditResult(s.engine.RunAudit(doc)), nil

	case protocol.MethodAuditFile:
		var params protocol.AuditFileParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		report, err := s.engine.AuditFile(params.Path)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		return s.toAuditResult(report), nil

	case protocol.MethodPrefsGet:
		p, err := s.engine.Preferences()
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		return toProtocolPrefs(p), nil

	case protocol.MethodPrefsSet:
		var params protocol.Preferences
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		if err := s.engine.SetPreferences(fromProtocolPrefs(params)); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		return params, nil

	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}
	}
}

func unmarshalParams(req *jsonrpc2.Request, out interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, out); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) health() protocol.HealthResult {
	return protocol.HealthResult{
		Status:   "ok",
		Version:  Version,
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Auditors: s.engine.Auditors(),
	}
}

func toContrastResult(r color.Result) protocol.ContrastResult {
	return protocol.ContrastResult{
		Ratio:  r.Ratio,
		Level:  string(r.Level),
		Passes: r.Passes,
	}
}

func (s *Server) toAuditResult(report *audit.Report) protocol.AuditResult {
	findings := make([]protocol.Finding, 0, len(report.Findings))
	for _, f := range report.Findings {
		findings = append(findings, protocol.Finding{
			ID:             f.ID,
			Rule:           f.Rule,
			Severity:       string(f.Severity),
			Message:        f.Message,
			Recommendation: f.Recommendation,
			Target:         f.Target,
			WCAGRefs:       f.WCAGRefs,
		})
	}

	return protocol.AuditResult{
		ID:    report.ID,
		Score: report.Score,
		Summary: protocol.Summary{
			Critical: report.Summary.Critical,
			Serious:  report.Summary.Serious,
			Moderate: report.Summary.Moderate,
			Minor:    report.Summary.Minor,
			Passed:   report.Summary.Passed,
		},
		Findings:  findings,
		Timestamp: report.Timestamp,
		Markdown:  s.engine.GenerateReport(report),
	}
}

func toProtocolPrefs(p prefs.Preferences) protocol.Preferences {
	return protocol.Preferences{
		Contrast:     p.Contrast,
		Motion:       p.Motion,
		TextSize:     p.TextSize,
		FocusSize:    p.FocusSize,
		ColorVision:  p.ColorVision,
		ScreenReader: p.ScreenReader,
		KeyboardOnly: p.KeyboardOnly,
	}
}

func fromProtocolPrefs(p protocol.Preferences) prefs.Preferences {
	return prefs.Preferences{
		Contrast:     p.Contrast,
		Motion:       p.Motion,
		TextSize:     p.TextSize,
		FocusSize:    p.FocusSize,
		ColorVision:  p.ColorVision,
		ScreenReader: p.ScreenReader,
		KeyboardOnly: p.KeyboardOnly,
	}
}

// Shutdown closes the listener and every open connection. Safe to call
// more than once.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		log.Info("shutting down daemon")
		close(s.shutdown)

		s.listener.Close()

		s.connMu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.connMu.Unlock()
	})
}
