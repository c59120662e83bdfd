package event

import "testing"

func TestQueuePollEmpty(t *testing.T) {
	q := NewQueue(4)
	if e, ok := q.Poll(); ok {
		t.Errorf("Poll() on empty queue = %v, expected nothing", e)
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)
	q.Push(KeyDown{Key: "a"})
	q.Push(KeyUp{Key: "a"})

	first, _ := q.Poll()
	second, _ := q.Poll()
	if first != (KeyDown{Key: "a"}) {
		t.Errorf("first = %v, expected KeyDown a", first)
	}
	if second != (KeyUp{Key: "a"}) {
		t.Errorf("second = %v, expected KeyUp a", second)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", q.Len())
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Push(KeyDown{Key: "a"})
	q.Push(KeyDown{Key: "b"})

	if q.Push(KeyDown{Key: "c"}) {
		t.Error("Push() on a full queue should report false")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", q.Dropped())
	}
}

func TestQueueQuitEvictsOldest(t *testing.T) {
	q := NewQueue(2)
	q.Push(KeyDown{Key: "a"})
	q.Push(KeyDown{Key: "b"})

	if !q.Push(Quit{}) {
		t.Fatal("Quit must always be queued")
	}

	var sawQuit bool
	for {
		e, ok := q.Poll()
		if !ok {
			break
		}
		if _, isQuit := e.(Quit); isQuit {
			sawQuit = true
		}
	}
	if !sawQuit {
		t.Error("Quit was lost")
	}
}

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) HandleKeyDown(KeyDown)                       { h.calls = append(h.calls, "keydown") }
func (h *recordingHandler) HandleKeyUp(KeyUp)                           { h.calls = append(h.calls, "keyup") }
func (h *recordingHandler) HandleJoyAxis(JoyAxis)                       { h.calls = append(h.calls, "joyaxis") }
func (h *recordingHandler) HandleJoyButtonDown(JoyButton)               { h.calls = append(h.calls, "joydown") }
func (h *recordingHandler) HandleJoyButtonUp(JoyButton)                 { h.calls = append(h.calls, "joyup") }
func (h *recordingHandler) HandleControllerAxis(ControllerAxis)         { h.calls = append(h.calls, "padaxis") }
func (h *recordingHandler) HandleControllerButtonDown(ControllerButton) { h.calls = append(h.calls, "paddown") }
func (h *recordingHandler) HandleControllerButtonUp(ControllerButton)   { h.calls = append(h.calls, "padup") }
func (h *recordingHandler) HandleJoyHat(JoyHat)                         { h.calls = append(h.calls, "hat") }
func (h *recordingHandler) OpenJoy(DeviceAdded)                         { h.calls = append(h.calls, "open") }
func (h *recordingHandler) CloseJoy()                                   { h.calls = append(h.calls, "close") }

func TestForwardRoutesEachKind(t *testing.T) {
	events := []Forwarder{
		KeyDown{Key: "up"},
		KeyUp{Key: "up"},
		JoyAxis{Axis: 1, Value: 100},
		JoyButtonDown{JoyButton{Button: 2}},
		JoyButtonUp{JoyButton{Button: 2}},
		ControllerAxis{Axis: 0},
		ControllerButtonDown{ControllerButton{Button: 1}},
		ControllerButtonUp{ControllerButton{Button: 1}},
		JoyHat{Value: HatLeft},
		DeviceAdded{Device: 0},
		DeviceRemoved{Device: 0},
	}
	expected := []string{
		"keydown", "keyup", "joyaxis", "joydown", "joyup",
		"padaxis", "paddown", "padup", "hat", "open", "close",
	}

	h := &recordingHandler{}
	for _, e := range events {
		e.Forward(h)
	}

	if len(h.calls) != len(expected) {
		t.Fatalf("got %d calls, expected %d", len(h.calls), len(expected))
	}
	for i := range expected {
		if h.calls[i] != expected[i] {
			t.Errorf("call %d = %s, expected %s", i, h.calls[i], expected[i])
		}
	}
}
