// internal/app/system/mongoconn/manager.go
package mongoconn

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	DefaultRetryDelay     = 10 * time.Second
	DefaultAttemptTimeout = 35 * time.Second
)

// Options configures a Manager.
type Options struct {
	Dial   DialFunc
	Logger *zap.Logger

	// AutoRetry keeps reconnecting in the background after a failed
	// attempt until a connection is made or Close is called. Long-lived
	// servers set it; one-shot tools leave it off.
	AutoRetry  bool
	RetryDelay time.Duration

	// AttemptTimeout bounds a single dial. Callers' contexts only bound
	// how long they wait for it.
	AttemptTimeout time.Duration

	// OnConnect, if set, runs after each successful dial and before the
	// connection is published, so no caller sees Connected until it
	// returns. It is bounded by AttemptTimeout and cannot fail the
	// connection.
	OnConnect func(ctx context.Context, c *Conn)

	Metrics *Metrics
}

type attempt struct {
	done    chan struct{}
	conn    *Conn
	err     error
	waiters int
}

// Manager owns the process-wide database connection. At most one connection
// attempt is in flight at any time; concurrent callers join it.
type Manager struct {
	dial           DialFunc
	log            *zap.Logger
	autoRetry      bool
	retryDelay     time.Duration
	attemptTimeout time.Duration
	onConnect      func(ctx context.Context, c *Conn)
	metrics        *Metrics

	mu       sync.Mutex
	state    State
	conn     *Conn
	lastErr  error
	pending  *attempt
	retrying bool
	closed   bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New builds a Manager in the Disconnected state. It does not dial.
func New(opts Options) *Manager {
	if opts.Dial == nil {
		panic("mongoconn: Options.Dial is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	timeout := opts.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	m := &Manager{
		dial:           opts.Dial,
		log:            log,
		autoRetry:      opts.AutoRetry,
		retryDelay:     delay,
		attemptTimeout: timeout,
		onConnect:      opts.OnConnect,
		metrics:        opts.Metrics,
		stopCh:         make(chan struct{}),
	}
	m.metrics.observeState(Disconnected)
	return m
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the cause of the most recent failed attempt, cleared
// on success.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Acquire returns the shared connection, establishing it if needed.
// A failure is always a *ConnectionError.
func (m *Manager) Acquire(ctx context.Context) (*Conn, error) {
	m.mu.Lock()
	if m.conn != nil {
		c := m.conn
		m.mu.Unlock()
		return c, nil
	}
	if m.closed {
		m.mu.Unlock()
		return nil, &ConnectionError{Cause: ErrClosed}
	}
	a := m.startLocked()
	a.waiters++
	m.mu.Unlock()

	select {
	case <-a.done:
		if a.err != nil {
			return nil, &ConnectionError{Cause: a.err}
		}
		return a.conn, nil
	case <-ctx.Done():
		return nil, &ConnectionError{Cause: ctx.Err()}
	}
}

// Warm starts a connection attempt in the background without waiting.
func (m *Manager) Warm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn != nil || m.closed {
		return
	}
	m.startLocked()
}

// Close stops the retry loop and disconnects. Later Acquire calls fail
// with ErrClosed.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.stopCh)
	conn := m.conn
	m.conn = nil
	m.setStateLocked(Disconnected)
	m.mu.Unlock()

	m.wg.Wait()

	if conn != nil && conn.Client != nil {
		if err := conn.Client.Disconnect(ctx); err != nil {
			m.log.Warn("mongo disconnect failed", zap.Error(err))
			return err
		}
	}
	m.log.Info("mongo connection manager closed")
	return nil
}

// startLocked returns the in-flight attempt, starting one if there is none.
// m.mu must be held.
func (m *Manager) startLocked() *attempt {
	if m.pending != nil {
		return m.pending
	}
	a := &attempt{done: make(chan struct{})}
	m.pending = a
	m.setStateLocked(Connecting)
	go m.run(a)
	return a
}

func (m *Manager) run(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), m.attemptTimeout)
	defer cancel()

	m.log.Info("connecting to mongo")
	start := time.Now()
	conn, err := m.dial(ctx)
	if err == nil && conn == nil {
		err = errors.New("dialer returned no connection")
	}
	if err == nil && m.onConnect != nil {
		hookCtx, hookCancel := context.WithTimeout(context.Background(), m.attemptTimeout)
		m.onConnect(hookCtx, conn)
		hookCancel()
	}

	var orphan *Conn
	spawnRetry := false

	m.mu.Lock()
	m.pending = nil
	switch {
	case err != nil && m.closed:
		m.lastErr = err
	case err != nil:
		m.lastErr = err
		m.setStateLocked(Failed)
		if m.autoRetry && !m.retrying {
			m.retrying = true
			m.wg.Add(1)
			spawnRetry = true
		}
	case m.closed:
		orphan, conn, err = conn, nil, ErrClosed
	default:
		m.conn = conn
		m.lastErr = nil
		m.setStateLocked(Connected)
	}
	a.conn, a.err = conn, err
	waiters := a.waiters
	if err != nil {
		m.metrics.observeAttempt("failure")
	} else {
		m.metrics.observeAttempt("success")
	}
	m.mu.Unlock()
	close(a.done)

	elapsed := time.Since(start)
	if err != nil {
		m.log.Error("mongo connection attempt failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int("waiters", waiters),
			zap.Bool("auto_retry", m.autoRetry))
	} else {
		m.log.Info("mongo connected",
			zap.String("conn_id", conn.ID),
			zap.Duration("elapsed", elapsed),
			zap.Int("waiters", waiters))
	}

	if orphan != nil && orphan.Client != nil {
		_ = orphan.Client.Disconnect(context.Background())
	}
	if spawnRetry {
		go m.retryLoop()
	}
}

// retryLoop waits the retry delay between attempts until connected or
// closed. Only one loop runs at a time.
func (m *Manager) retryLoop() {
	defer m.wg.Done()
	defer func() {
		m.mu.Lock()
		m.retrying = false
		m.mu.Unlock()
	}()

	delay := backoff.NewConstantBackOff(m.retryDelay)
	for {
		wait := delay.NextBackOff()
		m.log.Info("mongo reconnect scheduled", zap.Duration("delay", wait))

		timer := time.NewTimer(wait)
		select {
		case <-m.stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		m.mu.Lock()
		if m.conn != nil || m.closed {
			m.mu.Unlock()
			return
		}
		a := m.startLocked()
		m.mu.Unlock()

		select {
		case <-m.stopCh:
			return
		case <-a.done:
		}
		if a.err == nil {
			return
		}
	}
}

// m.mu must be held.
func (m *Manager) setStateLocked(s State) {
	m.state = s
	m.metrics.observeState(s)
}
