package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_BindDisplacesPriorSession(t *testing.T) {
	r := NewRegistry()

	r.Bind("acc-1", "sid-1")
	if !r.IsCurrent("acc-1", "sid-1") {
		t.Fatalf("bound session should be current")
	}

	r.Bind("acc-1", "sid-2")
	if r.IsCurrent("acc-1", "sid-1") {
		t.Fatalf("first session should be displaced by the second login")
	}
	if !r.IsCurrent("acc-1", "sid-2") {
		t.Fatalf("second session should be current")
	}
}

func TestRegistry_UnbindStaleSessionIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Bind("acc-1", "sid-1")
	r.Bind("acc-1", "sid-2")

	// A logout carrying the superseded id must not kill the newer session.
	r.Unbind("acc-1", "sid-1")
	if !r.IsCurrent("acc-1", "sid-2") {
		t.Fatalf("stale unbind displaced the active session")
	}

	r.Unbind("acc-1", "sid-2")
	if r.IsCurrent("acc-1", "sid-2") {
		t.Fatalf("session should be gone after unbind")
	}
}

func TestRegistry_EmptySessionIDNeverCurrent(t *testing.T) {
	r := NewRegistry()
	if r.IsCurrent("acc-1", "") {
		t.Fatalf("empty session id must never match")
	}
}

func TestRegistry_ConcurrentLoginsOneSurvivor(t *testing.T) {
	r := NewRegistry()

	const logins = 64
	ids := make([]string, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		ids[i] = fmt.Sprintf("sid-%d", i)
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			r.Bind("acc-1", sid)
		}(ids[i])
	}
	wg.Wait()

	var current int
	for _, sid := range ids {
		if r.IsCurrent("acc-1", sid) {
			current++
		}
	}
	if current != 1 {
		t.Fatalf("expected exactly one surviving session, got %d", current)
	}
}

func TestRegistry_AccountsAreIndependent(t *testing.T) {
	r := NewRegistry()

	r.Bind("acc-1", "sid-1")
	r.Bind("acc-2", "sid-2")
	if !r.IsCurrent("acc-1", "sid-1") || !r.IsCurrent("acc-2", "sid-2") {
		t.Fatalf("sessions for different accounts must not interfere")
	}

	r.Unbind("acc-1", "sid-1")
	if !r.IsCurrent("acc-2", "sid-2") {
		t.Fatalf("unbinding one account displaced another")
	}
}
