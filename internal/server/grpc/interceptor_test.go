package grpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordingLogger struct {
	logging.Nop
	mu    sync.Mutex
	lines [][]any
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, append([]any{msg}, args...))
}

func (r *recordingLogger) With(...any) logging.Logger { return r }

func field(line []any, key string) any {
	for i := 1; i+1 < len(line); i += 2 {
		if line[i] == key {
			return line[i+1]
		}
	}
	return nil
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	l := &recordingLogger{}
	s := NewHealthServer("", &fakePinger{}, time.Hour, l)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.loggingInterceptor(context.Background(), "req", info,
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if len(l.lines) != 1 {
		t.Fatalf("expected one log line, got %d", len(l.lines))
	}
	if got := field(l.lines[0], "method"); got != info.FullMethod {
		t.Fatalf("method = %v", got)
	}
	if got := field(l.lines[0], "code"); got != codes.OK.String() {
		t.Fatalf("code = %v", got)
	}
}

func TestLoggingInterceptor_LogsErrorCode(t *testing.T) {
	l := &recordingLogger{}
	s := NewHealthServer("", &fakePinger{}, time.Hour, l)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	_, err := s.loggingInterceptor(context.Background(), nil, info,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.NotFound, "unknown service")
		})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", status.Code(err))
	}
	if got := field(l.lines[0], "code"); got != codes.NotFound.String() {
		t.Fatalf("code = %v", got)
	}
}
