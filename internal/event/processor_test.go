package event

import "testing"

func TestProcessor_UnsubscribePreservesSurvivorOrder(t *testing.T) {
	p := newProcessor(0, 1)

	l1, l2, l3 := new(int), new(int), new(int)
	var order []string
	p.subscribe(handlerEntry{kind: 0, listener: l1, invoke: func(Event) { order = append(order, "l1") }})
	p.subscribe(handlerEntry{kind: 0, listener: l2, invoke: func(Event) { order = append(order, "l2") }})
	p.subscribe(handlerEntry{kind: 0, listener: l3, invoke: func(Event) { order = append(order, "l3") }})

	if removed := p.unsubscribe(l2); removed != 1 {
		t.Fatalf("unsubscribe removed %d entries, want 1", removed)
	}

	row := p.handlers[0]
	if len(row) != 2 {
		t.Fatalf("row has %d entries, want 2", len(row))
	}
	row[0].invoke(nil)
	row[1].invoke(nil)
	if order[0] != "l1" || order[1] != "l3" {
		t.Errorf("survivor order = %v, want [l1 l3]", order)
	}
}

func TestProcessor_UnsubscribeSameListenerManyEntries(t *testing.T) {
	p := newProcessor(0, 2)

	l := new(int)
	other := new(int)
	p.subscribe(handlerEntry{kind: 0, listener: l, invoke: func(Event) {}})
	p.subscribe(handlerEntry{kind: 0, listener: other, invoke: func(Event) {}})
	p.subscribe(handlerEntry{kind: 0, listener: l, invoke: func(Event) {}})
	p.subscribe(handlerEntry{kind: 1, listener: l, invoke: func(Event) {}})

	if removed := p.unsubscribe(l); removed != 3 {
		t.Fatalf("unsubscribe removed %d entries, want 3", removed)
	}
	if len(p.handlers[0]) != 1 || p.handlers[0][0].listener != other {
		t.Errorf("row 0 = %d entries, want only the other listener", len(p.handlers[0]))
	}
	if len(p.handlers[1]) != 0 {
		t.Errorf("row 1 = %d entries, want 0", len(p.handlers[1]))
	}
}

func TestProcessor_DequeueFIFO(t *testing.T) {
	p := newProcessor(0, 1)

	b1 := newBatch(nil, 1, nil)
	b2 := newBatch(nil, 1, nil)
	p.enqueue(b1)
	p.enqueue(b2)

	if got := p.pendingBatches(); got != 2 {
		t.Fatalf("pendingBatches = %d, want 2", got)
	}
	if p.dequeue() != b1 {
		t.Error("expected the oldest batch first")
	}
	if p.dequeue() != b2 {
		t.Error("expected the second batch next")
	}
	if p.dequeue() != nil {
		t.Error("expected nil on empty FIFO")
	}
}
