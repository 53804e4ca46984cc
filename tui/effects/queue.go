package effects

import (
	"sync"

	"binotify-cli/notify"

	tea "github.com/charmbracelet/bubbletea"
)

// NotifyMsg asks the UI to show a notification
type NotifyMsg struct {
	Notification notify.Notification
}

// NavigateMsg asks the UI to switch to the screen of a route
type NavigateMsg struct {
	Path string
}

// Queue collects notifications and navigations raised outside the update loop
// and hands them to the UI as messages, in the order they were raised.
// It satisfies both notify.Notifier and route.Navigator.
type Queue struct {
	mu      sync.Mutex
	pending []tea.Msg
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Notify enqueues a NotifyMsg
func (q *Queue) Notify(n notify.Notification) {
	q.push(NotifyMsg{Notification: n})
}

// Navigate enqueues a NavigateMsg
func (q *Queue) Navigate(path string) {
	q.push(NavigateMsg{Path: path})
}

// Drain returns everything queued so far and empties the queue
func (q *Queue) Drain() []tea.Msg {
	q.mu.Lock()
	defer q.mu.Unlock()
	msgs := q.pending
	q.pending = nil
	return msgs
}

// Len returns the number of queued messages
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) push(msg tea.Msg) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, msg)
}
