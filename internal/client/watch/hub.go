// Package watch turns cache writes into reactive read streams.
//
// Writers call Hub.Publish with the topics (cached tables) they changed,
// after their transaction has committed. Watch starts a goroutine that loads
// a snapshot, emits it, and reloads whenever one of its topics is published.
package watch

import "sync"

// Topic names one cached table.
type Topic string

const (
	TopicUsers      Topic = "users"
	TopicWorkspaces Topic = "workspaces"
	TopicMembers    Topic = "workspace_members"
	TopicProjects   Topic = "projects"
	TopicTasks      Topic = "tasks"
	TopicComments   Topic = "comments"
	TopicTags       Topic = "tags"
	TopicMedia      Topic = "media"
	TopicSession    Topic = "session"
)

type subscription struct {
	notify chan struct{}
}

// Hub fans change notifications out to subscribers. The zero value is not
// usable; call NewHub.
type Hub struct {
	mu       sync.Mutex
	versions map[Topic]uint64
	subs     map[Topic]map[*subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		versions: make(map[Topic]uint64),
		subs:     make(map[Topic]map[*subscription]struct{}),
	}
}

// Publish bumps the version of every topic and wakes their subscribers. It
// never blocks: a subscriber that has not consumed its previous signal keeps
// a single pending one.
func (h *Hub) Publish(topics ...Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	woken := make(map[*subscription]struct{})
	for _, t := range topics {
		h.versions[t]++
		for s := range h.subs[t] {
			if _, done := woken[s]; done {
				continue
			}
			woken[s] = struct{}{}
			select {
			case s.notify <- struct{}{}:
			default:
			}
		}
	}
}

// Version returns how many times topic has been published.
func (h *Hub) Version(topic Topic) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.versions[topic]
}

// Subscribers returns the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

func (h *Hub) subscribe(topics []Topic) (*subscription, func()) {
	s := &subscription{notify: make(chan struct{}, 1)}

	h.mu.Lock()
	for _, t := range topics {
		if h.subs[t] == nil {
			h.subs[t] = make(map[*subscription]struct{})
		}
		h.subs[t][s] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	return s, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, t := range topics {
				delete(h.subs[t], s)
				if len(h.subs[t]) == 0 {
					delete(h.subs, t)
				}
			}
		})
	}
}
