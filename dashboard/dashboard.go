// Package dashboard is the client-local budget tracker. It keeps a monthly
// budget and a list of expense entries in a local JSON file and derives
// totals, the remaining balance and a per-category breakdown from them.
//
// This subsystem is intentionally NOT synchronized with the server API: the
// two keep separate records, mirroring the original client behavior. Entries
// here carry their own generated ids, so they are stable across deletes.
package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one locally tracked expense.
type Entry struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note,omitempty"`
	Date     string  `json:"date"`
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Notifier receives budget threshold warnings.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify calls f.
func (f NotifierFunc) Notify(message string) { f(message) }

// ErrEntryNotFound is returned when an entry id does not exist.
var ErrEntryNotFound = errors.New("entry not found")

// state mirrors the persisted schema: the budget is kept as a string, the
// shape browser local storage used.
type state struct {
	MonthlyBudget string  `json:"monthlyBudget"`
	Expenses      []Entry `json:"expenses"`
}

// Tracker is the dashboard state. All methods are safe for concurrent use
// within one process; mutations are persisted before they return.
type Tracker struct {
	mu       sync.Mutex
	store    *Store
	st       state
	notifier Notifier
	warned   bool
	now      func() time.Time
}

// Open loads the tracker state from path, starting empty if the file does
// not exist yet. notifier may be nil.
func Open(path string, notifier Notifier) (*Tracker, error) {
	store := NewStore(path)
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		store:    store,
		st:       st,
		notifier: notifier,
		now:      time.Now,
	}
	// an already-exhausted budget should not re-notify on every start
	if t.budgetSet() && t.remainingLocked() <= 0 {
		t.warned = true
	}
	return t, nil
}

// SetBudget stores the monthly budget.
func (t *Tracker) SetBudget(amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.st.MonthlyBudget = strconv.FormatFloat(amount, 'f', -1, 64)
	if err := t.store.Save(t.st); err != nil {
		return err
	}
	t.checkBalance()
	return nil
}

// Budget returns the monthly budget, zero when unset.
func (t *Tracker) Budget() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budgetLocked()
}

// AddEntry records a new expense and returns it with its generated id.
func (t *Tracker) AddEntry(amount float64, category, note string) (Entry, error) {
	if category == "" {
		return Entry{}, errors.New("category is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entry := Entry{
		ID:       uuid.NewString(),
		Amount:   amount,
		Category: category,
		Note:     note,
		Date:     t.now().Format(time.RFC3339),
	}
	t.st.Expenses = append(t.st.Expenses, entry)
	if err := t.store.Save(t.st); err != nil {
		return Entry{}, err
	}
	t.checkBalance()
	return entry, nil
}

// UpdateEntry overwrites amount, category and note of the entry with the
// given id. Its id and date stay as they are.
func (t *Tracker) UpdateEntry(id string, amount float64, category, note string) (Entry, error) {
	if category == "" {
		return Entry{}, errors.New("category is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.st.Expenses {
		if t.st.Expenses[i].ID != id {
			continue
		}
		t.st.Expenses[i].Amount = amount
		t.st.Expenses[i].Category = category
		t.st.Expenses[i].Note = note
		if err := t.store.Save(t.st); err != nil {
			return Entry{}, err
		}
		t.checkBalance()
		return t.st.Expenses[i], nil
	}
	return Entry{}, ErrEntryNotFound
}

// DeleteEntry removes the entry with the given id.
func (t *Tracker) DeleteEntry(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.st.Expenses {
		if t.st.Expenses[i].ID != id {
			continue
		}
		t.st.Expenses = append(t.st.Expenses[:i], t.st.Expenses[i+1:]...)
		if err := t.store.Save(t.st); err != nil {
			return err
		}
		t.checkBalance()
		return nil
	}
	return ErrEntryNotFound
}

// Entries returns all entries, most recent first.
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, len(t.st.Expenses))
	copy(out, t.st.Expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Total returns the sum of all entry amounts.
func (t *Tracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalLocked()
}

// Remaining returns budget minus total.
func (t *Tracker) Remaining() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

// CategoryBreakdown sums amounts per category, largest first.
func (t *Tracker) CategoryBreakdown() []CategoryTotal {
	t.mu.Lock()
	defer t.mu.Unlock()

	sums := make(map[string]float64)
	for _, e := range t.st.Expenses {
		sums[e.Category] += e.Amount
	}
	out := make([]CategoryTotal, 0, len(sums))
	for name, value := range sums {
		out = append(out, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset irreversibly clears the budget and all entries.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.st = state{}
	t.warned = false
	return t.store.Save(t.st)
}

func (t *Tracker) budgetSet() bool {
	return t.st.MonthlyBudget != ""
}

func (t *Tracker) budgetLocked() float64 {
	b, err := strconv.ParseFloat(t.st.MonthlyBudget, 64)
	if err != nil {
		return 0
	}
	return b
}

func (t *Tracker) totalLocked() float64 {
	var total float64
	for _, e := range t.st.Expenses {
		total += e.Amount
	}
	return total
}

func (t *Tracker) remainingLocked() float64 {
	return t.budgetLocked() - t.totalLocked()
}

// checkBalance fires at most one notification per crossing of the
// remaining <= 0 threshold. Zero and negative balances get distinct
// wordings. Caller must hold the lock.
func (t *Tracker) checkBalance() {
	if !t.budgetSet() {
		t.warned = false
		return
	}
	remaining := t.remainingLocked()
	if remaining > 0 {
		t.warned = false
		return
	}
	if t.warned {
		return
	}
	t.warned = true
	if t.notifier == nil {
		return
	}
	if remaining == 0 {
		t.notifier.Notify("Your balance is now zero. Time to stop spending.")
	} else {
		t.notifier.Notify(fmt.Sprintf("You're over budget by %.2f. Stop spending now!", -remaining))
	}
}
