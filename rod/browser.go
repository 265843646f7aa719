package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// errClosed is returned by BrowserManager.Page after Close.
var errClosed = errors.New("browser closed")

// session is one launched Chrome process and its connection.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	served  int  // pages opened in this session
	open    int  // pages not yet released
	retired bool // replaced; closed once open reaches zero
}

// launch starts Chrome with the flags from opts.
func launch(opts Options) (*session, error) {
	l := launcher.New().
		Headless(true).
		Leakless(true).
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("blink-settings", "imagesEnabled=false").
		Set("lang", "en-US")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	if opts.UserAgent != "" {
		l = l.Set("user-agent", opts.UserAgent)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: b, launcher: l}, nil
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// BrowserManager hands out pages from a headless Chrome and relaunches it
// after MaxPages pages. A replaced browser stays up until its last page is
// released, so concurrent fetches are never cut off by a relaunch.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	opts Options

	mu     sync.Mutex
	cur    *session
	closed bool
}

// NewBrowserManager launches the first browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts Options) (*BrowserManager, error) {
	opts = opts.withDefaults()
	s, err := launch(opts)
	if err != nil {
		return nil, err
	}
	return &BrowserManager{opts: opts, cur: s}, nil
}

// Page opens a blank page bound to ctx. The returned release func closes
// the page and must be called exactly once.
func (m *BrowserManager) Page(ctx context.Context) (*rod.Page, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, errClosed
	}
	if m.cur.served >= m.opts.MaxPages {
		m.relaunch()
	}

	s := m.cur
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, err
	}
	s.served++
	s.open++

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = page.Close()
			m.release(s)
		})
	}
	return page.Context(ctx), release, nil
}

// relaunch replaces the current session. The old one keeps serving if
// Chrome cannot be started. Must be called with mu held.
func (m *BrowserManager) relaunch() {
	next, err := launch(m.opts)
	if err != nil {
		m.cur.served = 0
		return
	}
	old := m.cur
	m.cur = next
	old.retired = true
	if old.open == 0 {
		_ = old.close()
	}
}

func (m *BrowserManager) release(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.open--
	if s.retired && s.open == 0 {
		_ = s.close()
	}
}

// Close shuts down the current browser. Close is safe to call multiple times.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.cur.close()
}

// LauncherPID returns the process ID of the current browser launcher,
// or 0 once closed.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}
	return m.cur.launcher.PID()
}
