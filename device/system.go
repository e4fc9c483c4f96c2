package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/micmonay/keybd_event"

	"keydeck/binding"
)

// wheelStep is the scroll distance injected per wheel press.
const wheelStep = 3

// System injects input through the OS: keyboard via keybd_event, mouse via
// robotgo. KeyBonding is stateful, so every call runs under the mutex.
type System struct {
	mu     sync.Mutex
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
}

func NewSystem() *System {
	return &System{}
}

func (s *System) bond() error {
	s.kbOnce.Do(func() {
		s.kb, s.kbErr = keybd_event.NewKeyBonding()
	})
	return s.kbErr
}

func (s *System) Press(in binding.Input, hold time.Duration) error {
	switch in.Kind {
	case binding.Keyboard:
		return s.keyboard(in, func() error {
			if err := s.kb.Press(); err != nil {
				return err
			}
			if hold > 0 {
				time.Sleep(hold)
			}
			return s.kb.Release()
		})
	case binding.MouseButton:
		robotgo.Toggle(in.Button, "down")
		if hold > 0 {
			time.Sleep(hold)
		}
		robotgo.Toggle(in.Button, "up")
		return nil
	case binding.MouseWheel:
		robotgo.Scroll(0, in.Wheel*wheelStep)
		return nil
	}
	return fmt.Errorf("unsupported input kind %d", in.Kind)
}

func (s *System) Down(in binding.Input) error {
	switch in.Kind {
	case binding.Keyboard:
		return s.keyboard(in, s.kb.Press)
	case binding.MouseButton:
		robotgo.Toggle(in.Button, "down")
		return nil
	case binding.MouseWheel:
		// Wheels have no held state; a down is a single notch.
		robotgo.Scroll(0, in.Wheel*wheelStep)
		return nil
	}
	return fmt.Errorf("unsupported input kind %d", in.Kind)
}

func (s *System) Up(in binding.Input) error {
	switch in.Kind {
	case binding.Keyboard:
		return s.keyboard(in, s.kb.Release)
	case binding.MouseButton:
		robotgo.Toggle(in.Button, "up")
		return nil
	case binding.MouseWheel:
		return nil
	}
	return fmt.Errorf("unsupported input kind %d", in.Kind)
}

// keyboard loads the binding into the bonding and runs fn under the lock.
func (s *System) keyboard(in binding.Input, fn func() error) error {
	if err := s.bond(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.kb.SetKeys(in.Keys...)
	s.kb.HasCTRL(in.Mods.Ctrl)
	s.kb.HasALT(in.Mods.Alt)
	s.kb.HasSHIFT(in.Mods.Shift)
	s.kb.HasSuper(in.Mods.Super)
	return fn()
}
