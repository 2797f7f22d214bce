package domain

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// queueAccount builds an open account with a large balance so operations
// never fail on funds.
func queueAccount(t *testing.T, id string) *Account {
	t.Helper()

	account, err := NewAccount(id, decimal.NewFromInt(1_000_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return account
}

func TestOperationQueue_FIFO(t *testing.T) {
	sender := queueAccount(t, "acc-1")
	receiver := queueAccount(t, "acc-2")

	var order []string
	journal := &recordingJournal{}

	// Three independent transactions debiting the same sender; each leg
	// records its transaction id on completion via the journal once the
	// credit side settles too.
	q := sender.Queue()
	for _, id := range []string{"tx-1", "tx-2", "tx-3"} {
		tx := NewTransaction(id, sender, receiver, decimal.NewFromInt(1), journal, nil)
		q.Enqueue(tx.Debit())
		receiver.Queue().Enqueue(tx.Credit())
	}

	q.Drain()
	receiver.Queue().Drain()

	journal.mu.Lock()
	for _, rec := range journal.records {
		order = append(order, rec.TransactionID)
	}
	journal.mu.Unlock()

	want := []string{"tx-1", "tx-2", "tx-3"}
	if len(order) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestOperationQueue_DrainEmptiesQueue(t *testing.T) {
	sender := queueAccount(t, "acc-1")
	receiver := queueAccount(t, "acc-2")

	q := sender.Queue()
	for i := 0; i < 10; i++ {
		tx := NewTransaction("tx", sender, receiver, decimal.NewFromInt(1), nil, nil)
		q.Enqueue(tx.Debit())
	}

	if q.Len() != 10 {
		t.Fatalf("expected 10 pending operations, got %d", q.Len())
	}

	q.Drain()

	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
	if !sender.Balance().Equal(decimal.NewFromInt(999_990)) {
		t.Errorf("expected balance 999990, got %s", sender.Balance())
	}
}

func TestOperationQueue_ConcurrentEnqueueDrain(t *testing.T) {
	sender := queueAccount(t, "acc-1")
	receiver := queueAccount(t, "acc-2")

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				tx := NewTransaction("tx", sender, receiver, decimal.NewFromInt(1), nil, nil)
				sender.Queue().Enqueue(tx.Debit())
				sender.Queue().Drain()
			}
		}()
	}

	wg.Wait()

	// Every caller drains after enqueueing, so no operation is stranded
	// regardless of which drain loop absorbed it.
	sender.Queue().Drain()

	if sender.Queue().Len() != 0 {
		t.Fatalf("expected empty queue, got %d pending", sender.Queue().Len())
	}

	want := decimal.NewFromInt(1_000_000 - workers*perWorker)
	if !sender.Balance().Equal(want) {
		t.Errorf("expected balance %s, got %s", want, sender.Balance())
	}
}
