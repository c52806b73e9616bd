package grid

import (
	"sync"
	"testing"
)

func TestBridgeSendReceive(t *testing.T) {
	b := NewBridge(4)
	b.Send("hello")
	select {
	case m := <-b.Messages():
		if m != "hello" {
			t.Errorf("received %v, want hello", m)
		}
	default:
		t.Fatal("no message on bridge after Send")
	}
}

func TestBridgeCloneSharesDestination(t *testing.T) {
	b := NewBridge(4)
	clone := b.Clone()
	clone.Send(1)
	clone.Clone().Send(2)
	got := []Message{<-b.Messages(), <-b.Messages()}
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("messages through clones = %v, want [1 2]", got)
	}
}

func TestBridgeConcurrentSenders(t *testing.T) {
	const n = 20
	b := NewBridge(n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		s := b.Clone()
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Send(v)
		}(i)
	}
	wg.Wait()
	seen := make(map[Message]bool)
	for i := 0; i < n; i++ {
		seen[<-b.Messages()] = true
	}
	if len(seen) != n {
		t.Errorf("received %d distinct messages, want %d", len(seen), n)
	}
}

func TestBridgeSendAfterClosePanics(t *testing.T) {
	b := NewBridge(1)
	clone := b.Clone()
	b.Close()

	for name, s := range map[string]MessageSender{"bridge": b, "clone": clone} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s.Send after Close did not panic", name)
				}
			}()
			s.Send("late")
		}()
	}
}

func TestBridgeCloseIdempotent(t *testing.T) {
	b := NewBridge(1)
	b.Close()
	b.Close() // must not panic
}
