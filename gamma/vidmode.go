package gamma

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xf86vidmode"
)

// vidModeScale is the fixed-point scale XF86VidMode uses on the wire for gamma
// values.
const vidModeScale = 10000

// vidMode sets the gamma of the default screen using XF86VidMode.
type vidMode struct {
	conn   *xgb.Conn
	screen uint16
	logger *slog.Logger
}

func newVidMode(display string, logger *slog.Logger) (*vidMode, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}
	if err := xf86vidmode.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xf86vidmode: %w", err)
	}
	m := &vidMode{
		conn:   conn,
		screen: uint16(conn.DefaultScreen),
		logger: logger,
	}
	logger.Debug("x11: xf86vidmode: initialized", "screen", m.screen)
	return m, nil
}

func (m *vidMode) set(c Color) error {
	return SetVidMode(m.conn, m.screen, c)
}

func (m *vidMode) close() {
	m.conn.Close()
}

// SetVidMode sets the gamma of the specified screen. The XF86VidMode extension
// must be initialized.
func SetVidMode(conn *xgb.Conn, screen uint16, c Color) error {
	if err := xf86vidmode.SetGammaChecked(conn, screen,
		uint32(c[0]*vidModeScale),
		uint32(c[1]*vidModeScale),
		uint32(c[2]*vidModeScale),
	).Check(); err != nil {
		return fmt.Errorf("xf86vidmode: set gamma: %w", err)
	}
	return nil
}
