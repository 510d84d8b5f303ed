package gamma

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// randR sets gamma ramps for every CRTC of the default screen using RandR,
// processing CRTC change events in another goroutine.
type randR struct {
	conn   *xgb.Conn
	logger *slog.Logger

	root xproto.Window

	stale atomic.Bool // crtcs needs to be refreshed
	crtcs []randrCrtc

	emu sync.Mutex
	err error // sticky fatal connection error
}

type randrCrtc struct {
	crtc    randr.Crtc
	r, g, b []uint16
	size    uint16
}

func newRandR(display string, logger *slog.Logger) (*randR, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	m := &randR{conn: conn, logger: logger}
	m.root = xproto.Setup(m.conn).DefaultScreen(conn).Root
	m.stale.Store(true)

	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("randr: %w", err)
	}

	if err := randr.SelectInputChecked(m.conn, m.root, randr.NotifyMaskCrtcChange).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("randr: select input: %w", err)
	}

	go func() {
		for {
			e, err := m.conn.WaitForEvent()
			if e == nil && err == nil {
				return // closed
			}
			if err != nil {
				m.emu.Lock()
				if m.err == nil {
					m.err = err
				}
				m.emu.Unlock()
				continue
			}
			switch e := e.(type) {
			case randr.NotifyEvent:
				if e.SubCode == randr.NotifyCrtcChange {
					m.logger.Debug("x11: randr: crtc changed")
					m.stale.Store(true)
				}
			}
		}
	}()

	return m, nil
}

func (m *randR) set(c Color) error {
	if err := func() error {
		m.emu.Lock()
		defer m.emu.Unlock()
		return m.err
	}(); err != nil {
		return fmt.Errorf("x11: %w", err)
	}

	if m.stale.Swap(false) {
		if err := m.refresh(); err != nil {
			m.stale.Store(true)
			return err
		}
	}

	for i := range m.crtcs {
		crtc := &m.crtcs[i]
		Ramp(crtc.r, crtc.g, crtc.b, c)
		if err := randr.SetCrtcGammaChecked(m.conn, crtc.crtc, crtc.size, crtc.r, crtc.g, crtc.b).Check(); err != nil {
			// the crtc may have gone away since the last refresh
			m.logger.Warn("x11: randr: failed to set gamma ramp", "crtc", crtc.crtc, "error", err)
			m.stale.Store(true)
		}
	}
	return nil
}

func (m *randR) refresh() error {
	resources, err := randr.GetScreenResourcesCurrent(m.conn, m.root).Reply()
	if err != nil {
		return fmt.Errorf("x11: randr: get screen resources: %w", err)
	}
	crtcs := m.crtcs[:0]
	for _, crtc := range resources.Crtcs {
		gamma, err := randr.GetCrtcGammaSize(m.conn, crtc).Reply()
		if err != nil {
			m.logger.Warn("x11: randr: failed to get gamma size", "crtc", crtc, "error", err)
			continue
		}
		if gamma.Size == 0 {
			continue
		}
		crtcs = append(crtcs, randrCrtc{
			crtc: crtc,
			size: gamma.Size,
			r:    make([]uint16, gamma.Size),
			g:    make([]uint16, gamma.Size),
			b:    make([]uint16, gamma.Size),
		})
	}
	m.crtcs = crtcs
	m.logger.Debug("x11: randr: refreshed crtcs", "count", len(crtcs))
	return nil
}

func (m *randR) close() {
	m.conn.Close()
}
